package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
)

// BindAndValidate binds JSON body into `out` and runs validation.
// If either step fails, it writes a 400 response and returns an error for the handler to short-circuit.
func BindAndValidate(c *gin.Context, out any, v *Validator) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errorType":    apperr.KindInvalidInput.String(),
			"errorMessage": "invalid request body: " + err.Error(),
		})
		return err
	}

	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errorType":    apperr.KindInvalidInput.String(),
			"errorMessage": err.Error(),
			"fields":       Fields(err),
		})
		return err
	}
	return nil
}
