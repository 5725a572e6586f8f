// Package binding implements the expression binding table: one row per
// color model input plus any number of user-defined auxiliary rows. Each row
// associates a name with expression text. Rows are evaluated per render
// index against an expr.Context, auxiliary rows first in dependency order.
package binding
