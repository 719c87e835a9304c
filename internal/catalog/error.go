package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")

	ErrFailedGetProducts   = errors.New("failed to get products")
	ErrFailedGetCategories = errors.New("failed to get categories")
)
