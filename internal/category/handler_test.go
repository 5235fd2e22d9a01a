package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/leave-management/internal/category"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category Handler", func() {
	It("should handle GET /categories request successfully", func() {
		service := category.NewService([]string{"VACATION", "EMERGENCY", "SICK"}, logger.Discard())
		handler := category.NewHandler(transport.NewBaseHandler(logger.Discard()), service)

		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		w := httptest.NewRecorder()

		handler.GetCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(3))
		Expect(response.Categories[2].Name).To(Equal("SICK"))
		Expect(response.Categories[2].Description).To(BeEmpty())
	})
})
