// Package render turns a binding table into an ordered sequence of colors.
//
// For every index n in [0, count) the loop variable x is bound to n, the
// table is evaluated, and the resulting inputs are converted by the color
// model. Rows that fail to evaluate never abort a render: the input's
// documented default is substituted and the substitution is reported in
// Result.Fallbacks.
package render
