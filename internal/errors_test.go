package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/leave-management/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("should match sentinels by code through wrapping", func() {
		err := fmt.Errorf("deciding: %w", internal.ErrAlreadyDecided.WithCause(errors.New("lost race")))
		Expect(errors.Is(err, internal.ErrAlreadyDecided)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrLeaveNotFound)).To(BeFalse())
	})

	It("should not mutate the sentinel when adding a cause or details", func() {
		_ = internal.ErrInvalidInput.WithDetails("x").WithCause(errors.New("y"))
		Expect(internal.ErrInvalidInput.Details).To(BeNil())
		Expect(internal.ErrInvalidInput.Cause).To(BeNil())
	})

	It("should keep the cause out of the JSON body", func() {
		appErr := internal.NewInternalError("Internal server error", errors.New("pq: connection refused"))
		status, body := appErr.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusInternalServerError))

		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).NotTo(ContainSubstring("connection refused"))
		Expect(string(raw)).To(ContainSubstring(`"code":"INTERNAL_ERROR"`))
	})

	It("should join field messages for logging", func() {
		appErr := internal.ErrInvalidInput.WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
			{Field: "username", Message: "username is required"},
			{Field: "password", Message: "password is required"},
		}})
		Expect(appErr.GetDetailedMessage()).To(Equal("username is required; password is required"))
		Expect(appErr.Error()).To(Equal("username is required"))
	})

	It("should be found by IsAppError through a wrap", func() {
		appErr, ok := internal.IsAppError(fmt.Errorf("outer: %w", internal.ErrForbidden))
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusForbidden))

		_, ok = internal.IsAppError(errors.New("plain"))
		Expect(ok).To(BeFalse())
	})
})
