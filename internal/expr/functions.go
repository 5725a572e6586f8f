package expr

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions is the fixed function table available to every expression.
var functions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"int":    stdlib.IntFunc,
	"log":    stdlib.LogFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,
	"sin":    unaryMathFunc("sin", math.Sin),
	"cos":    unaryMathFunc("cos", math.Cos),
	"tan":    unaryMathFunc("tan", math.Tan),
	"sqrt":   unaryMathFunc("sqrt", math.Sqrt),
}

// FunctionNames lists the callable functions, sorted.
func FunctionNames() []string {
	return []string{"abs", "ceil", "cos", "floor", "int", "log", "max", "min", "pow", "signum", "sin", "sqrt", "tan"}
}

// unaryMathFunc wraps a float64 function as a cty function. Results that are
// not finite are reported as errors because cty cannot hold NaN.
func unaryMathFunc(name string, fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "num", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			in, _ := args[0].AsBigFloat().Float64()
			out := fn(in)
			if math.IsNaN(out) || math.IsInf(out, 0) {
				return cty.UnknownVal(cty.Number), fmt.Errorf("%s(%v) is not a finite number", name, in)
			}
			return cty.NumberFloatVal(out), nil
		},
	})
}
