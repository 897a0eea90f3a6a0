// Package validation validates configuration structs with
// go-playground/validator, reporting failures as *errors.AppError with one
// entry per offending field.
package validation
