package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/lukusafi/laundry-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"CustomerID":    "customer_id",
		"OrderDate":     "order_date",
		"Name":          "name",
		"PaymentStatus": "payment_status",
		"ID":            "id",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnake(in), in)
	}
}

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(RequestIDKey, "req-1")
	fn(c)
	return w
}

func TestError_UsesAppErrorCode(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, apperror.NewConflictError("A customer with this phone number already exists"))
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "req-1", body.Meta.RequestID)
	assert.NotEmpty(t, body.Meta.Timestamp)
}

func TestError_UnclassifiedIs500(t *testing.T) {
	w := record(func(c *gin.Context) { Error(c, errors.New("boom")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPaginated_Shape(t *testing.T) {
	result := pagination.NewResult([]int{1, 2}, pagination.New(2, 10, 25))
	w := record(func(c *gin.Context) { Paginated(c, "ok", result) })

	var body struct {
		Data struct {
			Items      []int `json:"items"`
			Pagination struct {
				Page       int  `json:"page"`
				TotalPages int  `json:"totalPages"`
				HasNext    bool `json:"hasNext"`
				HasPrev    bool `json:"hasPrev"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []int{1, 2}, body.Data.Items)
	assert.Equal(t, 3, body.Data.Pagination.TotalPages)
	assert.True(t, body.Data.Pagination.HasNext)
	assert.True(t, body.Data.Pagination.HasPrev)
}

func TestBindError_MalformedBody(t *testing.T) {
	w := record(func(c *gin.Context) { BindError(c, errors.New("unexpected EOF")) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
