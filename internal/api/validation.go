package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipebox/backend/internal/models"
)

var registerOnce sync.Once

// RegisterValidators adds the recipe enum tags to gin's validator. Safe to
// call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("difficulty", enumTag(models.IsDifficulty))
		_ = v.RegisterValidation("category", enumTag(models.IsCategory))
		_ = v.RegisterValidation("cuisine", enumTag(models.IsCuisine))
	})
}

func enumTag(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}
