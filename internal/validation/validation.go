package validation

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/duccv/bank-web/internal/constant"
	"github.com/duccv/bank-web/internal/model/response"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()

	// report json/form names so flags line up with front-end fields
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]func(string) Violations{
		"cpf":          CPF,
		"password":     Password,
		"birthdate":    BirthDate,
		"calendardate": CalendarDate,
	}
	for tag, rule := range rules {
		rule := rule
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String()) == nil
		})
	}
	_ = v.RegisterValidation("gmail", func(fl validator.FieldLevel) bool {
		return Gmail(fl.Field().String())
	})
	return v
}

// Struct validates s with the application's rules.
func Struct(s any) error {
	return validate.Struct(s)
}

// FieldErrors renders a validation error as field → flags. Custom rules are
// re-run to report every flag they raise; built-in tags report themselves.
// Errors that are not validation errors yield nil.
func FieldErrors(err error) map[string]Violations {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]Violations, len(verrs))
	for _, fe := range verrs {
		flags := out[fe.Field()]
		if flags == nil {
			flags = Violations{}
			out[fe.Field()] = flags
		}

		value, _ := fe.Value().(string)
		var rule Violations
		switch fe.Tag() {
		case "cpf":
			rule = CPF(value)
		case "password":
			rule = Password(value)
		case "birthdate":
			rule = BirthDate(value)
		case "calendardate":
			rule = CalendarDate(value)
		}
		if len(rule) == 0 {
			flags[fe.Tag()] = true
			continue
		}
		for k := range rule {
			flags[k] = true
		}
	}
	return out
}

// Invalid builds the 400 envelope for err.
func Invalid(err error) response.ResponseData {
	res := constant.INVALID_REQUEST
	if fields := FieldErrors(err); fields != nil {
		res.Error = "validation_failed"
		res.Data = fields
		return res
	}
	res.Error = err.Error()
	return res
}

func isEmptyInterface[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t == reflect.TypeOf((*any)(nil)).Elem()
}

// Validate binds and validates the JSON body B, URI params P and query Q of
// a request. Pass any to skip a part. Valid values are stored under the
// constant.Validated* keys; failures abort with 400 and per-field flags.
func Validate[B any, P any, Q any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isEmptyInterface[B]() {
			var body B
			if err := c.ShouldBindJSON(&body); err != nil {
				abort(c, err)
				return
			}
			if err := validate.Struct(body); err != nil {
				abort(c, err)
				return
			}
			c.Set(constant.ValidatedBody, body)
		}

		if !isEmptyInterface[P]() {
			var params P
			if err := c.ShouldBindUri(&params); err != nil {
				abort(c, err)
				return
			}
			if err := validate.Struct(params); err != nil {
				abort(c, err)
				return
			}
			c.Set(constant.ValidatedParams, params)
		}

		if !isEmptyInterface[Q]() {
			var query Q
			if err := c.ShouldBindQuery(&query); err != nil {
				abort(c, err)
				return
			}
			if err := validate.Struct(query); err != nil {
				abort(c, err)
				return
			}
			c.Set(constant.ValidatedQuery, query)
		}

		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, Invalid(err))
}

// Body returns the body stored by Validate.
func Body[T any](c *gin.Context) T {
	v, _ := c.Get(constant.ValidatedBody)
	t, _ := v.(T)
	return t
}

// Query returns the query stored by Validate.
func Query[T any](c *gin.Context) T {
	v, _ := c.Get(constant.ValidatedQuery)
	t, _ := v.(T)
	return t
}
