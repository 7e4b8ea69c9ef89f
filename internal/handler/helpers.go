package handler

import (
	"errors"
	"net/http"
	"reflect"

	"kioscopos/internal/apierror"
	"kioscopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal validates as its float value so numeric tags do not panic.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags.
// On failure it writes the response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery is bindAndValidate for query-string parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Parámetros inválidos: "+err.Error()))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(ves))
		for _, fe := range ves {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads the :id path parameter; writes 422 and returns false when it is not a UUID.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCampo("id", "no es un identificador válido"))
		return uuid.Nil, false
	}
	return id, true
}

func noEncontrado(c *gin.Context, que string) {
	c.JSON(http.StatusNotFound, apierror.New(que+" no encontrado"))
}

// responderError maps service errors onto HTTP statuses. Storage failures are
// logged with their cause and answered with a generic message.
func responderError(c *gin.Context, err error) {
	var (
		v     *service.ValidacionError
		stock *service.StockInsuficienteError
		conf  *service.ConflictoError
		enUso *service.CategoriaEnUsoError
	)
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCampo(v.Campo, v.Motivo))
	case errors.As(err, &stock):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(stock.Error()))
	case errors.As(err, &conf):
		c.JSON(http.StatusConflict, apierror.New(conf.Error()))
	case errors.As(err, &enUso):
		c.JSON(http.StatusConflict, apierror.New(enUso.Error()))
	case errors.Is(err, service.ErrCredenciales):
		c.JSON(http.StatusUnauthorized, apierror.New("Credenciales inválidas"))
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
