package models

import (
	"fmt"
)

const (
	MethodOLS   = "ols"
	MethodRidge = "ridge"
	MethodLasso = "lasso"
)

type ModelConfig struct {
	Method  string
	Lambda  float64
	Tol     float64
	MaxIter int
}

// Methods lists the supported regression methods in report order.
func Methods() []string {
	return []string{MethodOLS, MethodRidge, MethodLasso}
}

// IsRegularized reports whether the method carries a penalty to tune.
func IsRegularized(method string) bool {
	return method == MethodRidge || method == MethodLasso
}

func CreateModel(config ModelConfig) (Model, error) {
	if config.Lambda < 0 {
		return nil, fmt.Errorf("penalty must be non-negative, got %v", config.Lambda)
	}

	switch config.Method {
	case MethodOLS:
		return NewOLS(), nil

	case MethodRidge:
		return NewRidge(config.Lambda), nil

	case MethodLasso:
		lasso := NewLasso(config.Lambda)
		if config.Tol > 0 {
			lasso.Tol = config.Tol
		}
		if config.MaxIter > 0 {
			lasso.MaxIter = config.MaxIter
		}
		return lasso, nil

	default:
		return nil, fmt.Errorf("unknown method: %s", config.Method)
	}
}
