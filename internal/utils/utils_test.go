package utils

import (
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaivyah/storefront-backend/internal/i18n"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestGenerateProductCode(t *testing.T) {
	pattern := regexp.MustCompile(`^PRD[A-Z0-9]{9}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateProductCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s, 16)
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	id := uuid.New()

	token, err := GenerateJWT(id, "asha@example.com", "admin", 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "shaivyah", claims.Issuer)
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	SetJWTSecret("secret-a")
	token, err := GenerateJWT(uuid.New(), "a@example.com", "user", 1)
	require.NoError(t, err)

	SetJWTSecret("secret-b")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
	assert.False(t, IsTokenExpired(err))
}

func TestJWTExpired(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateJWT(uuid.New(), "a@example.com", "user", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	require.Error(t, err)
	assert.True(t, IsTokenExpired(err))
}

func TestJWTRejectsNoneAlgorithm(t *testing.T) {
	claims := JWTClaims{UserID: uuid.NewString(), Role: "admin"}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateJWT(signed)
	assert.Error(t, err)
}

type addressInput struct {
	Pincode string `json:"pincode" validate:"required,pincode"`
	Phone   string `json:"phone" validate:"required,phone"`
	Name    string `json:"name" validate:"required,min=2"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Status  string `json:"status" validate:"omitempty,oneof=pending approved"`
}

func TestValidatorCustomRules(t *testing.T) {
	valid := addressInput{Pincode: "500001", Phone: "9876543210", Name: "Asha", Rating: 5}
	assert.NoError(t, ValidateStruct(&valid))

	assert.NoError(t, ValidateVar("500001", "pincode"))
	assert.Error(t, ValidateVar("12345", "pincode"))
	assert.Error(t, ValidateVar("5000a1", "pincode"))
	assert.Error(t, ValidateVar("98765", "phone"))
	assert.Error(t, ValidateVar("98765432101", "phone"))
}

func TestValidationMessages(t *testing.T) {
	input := addressInput{Pincode: "12345", Phone: "123", Name: "A", Rating: 9, Status: "gone"}
	errs := GetValidationErrors("en", ValidateStruct(&input))

	messages := map[string]string{}
	for _, e := range errs {
		messages[e.Field] = e.Message
	}

	assert.Equal(t, "Invalid pincode", messages["pincode"])
	assert.Equal(t, "Invalid phone number", messages["phone"])
	assert.Equal(t, "name must be at least 2 characters", messages["name"])
	assert.Equal(t, "rating is out of range", messages["rating"])
	assert.Equal(t, "status must be one of: pending, approved", messages["status"])
}

func TestGetValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, GetValidationErrors("en", nil))
	assert.Empty(t, GetValidationErrors("en", assert.AnError))
}

func TestGetPaginationParams(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/products", nil)

	params := GetPaginationParams(c)
	assert.False(t, params.Enabled)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/products?page=3&limit=500&order=sideways", nil)
	params = GetPaginationParams(c)
	assert.True(t, params.Enabled)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]int{1, 2}, 45, PaginationParams{Page: 2, Limit: 20, Enabled: true})
	assert.Equal(t, 3, result.TotalPages)

	all := CreatePaginationResult([]int{}, 7, PaginationParams{Page: 1, Limit: 20})
	assert.Equal(t, 7, all.Limit)
	assert.Equal(t, 1, all.TotalPages)

	empty := CreatePaginationResult([]int{}, 0, PaginationParams{Page: 1, Limit: 20})
	assert.Equal(t, 1, empty.TotalPages)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%silk%", ContainsPattern("SILK"))
	assert.Equal(t, `%50\% off%`, ContainsPattern("50% off"))
	assert.Equal(t, `%a\_b\\c%`, ContainsPattern(`a_b\c`))
}
