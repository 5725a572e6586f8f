// Package expr parses and evaluates the numeric expressions bound to color
// model inputs. Expressions use the HCL native expression syntax and are
// evaluated against a Context of number variables, most notably the loop
// variable x.
package expr
