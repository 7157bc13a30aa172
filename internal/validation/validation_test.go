package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/model/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	response.ResponseData
	Data map[string]map[string]bool `json:"data"`
}

func TestFieldErrors_RendersRuleFlags(t *testing.T) {
	err := Struct(model.RegisterRequest{
		CPF:      "11111111111",
		FullName: "Ana",
		Email:    "ana@outlook.com",
		Password: "abc",
		Phone:    "11999990000",
		Date:     "31/02/2020",
	})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, Violations{FlagInvalidCPF: true}, fields["cpf"])
	assert.Equal(t, Violations{"gmail": true}, fields["email"])
	assert.Equal(t, Violations{FlagMinLength: true, FlagUppercase: true, FlagNumber: true, FlagSymbol: true}, fields["password"])
	assert.Equal(t, Violations{FlagInvalidDate: true}, fields["date"])
	assert.NotContains(t, fields, "fullName")
}

func TestStruct_DecimalFields(t *testing.T) {
	ok := model.LoanRequest{Value: decimal.NewFromInt(1000), Term: 12, MonthlyIncome: decimal.NewFromInt(3000)}
	assert.NoError(t, Struct(ok))

	bad := model.LoanRequest{Value: decimal.NewFromInt(-5), Term: 0, MonthlyIncome: decimal.Zero}
	fields := FieldErrors(Struct(bad))
	assert.Equal(t, Violations{"gt": true}, fields["value"])
	assert.Equal(t, Violations{"required": true}, fields["term"])
	assert.Equal(t, Violations{"required": true}, fields["monthlyIncome"])
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
	res := Invalid(assert.AnError)
	assert.Equal(t, http.StatusBadRequest, res.Ec)
	assert.Equal(t, assert.AnError.Error(), res.Error)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.POST("/login", Validate[model.LoginRequest, any, any](), func(c *gin.Context) {
		body := Body[model.LoginRequest](c)
		c.JSON(http.StatusOK, response.OK(body.CPF))
	})
	r.GET("/email", Validate[any, any, model.EmailQuery](), func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OK(Query[model.EmailQuery](c).Email))
	})
	return r
}

func TestValidate_Body(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"cpf":"529.982.247-25","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "529.982.247-25")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"cpf":"123","password":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "validation_failed", got.Error)
	assert.True(t, got.Data["cpf"][FlagInvalidCPF])
	assert.True(t, got.Data["password"]["required"])
}

func TestValidate_MalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"cpf":`))
	req.Header.Set("Content-Type", "application/json")
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request payload")
}

func TestValidate_Query(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/email?email=ana@gmail.com", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/email?email=nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"email":{"email":true}`)
}
