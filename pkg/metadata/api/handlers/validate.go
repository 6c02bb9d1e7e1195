package handlers

import (
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
	})
	return validatorInst
}

// decodeAndValidate decodes a JSON body and runs struct-tag validation on it,
// writing a 400 problem response on either failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if !decodeJSONBody(w, r, v) {
		return false
	}
	if err := getValidator().Struct(v); err != nil {
		BadRequest(w, err.Error())
		return false
	}
	return true
}
