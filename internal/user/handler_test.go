package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/leave-management/internal"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/internal/user"
	"github.com/frahmantamala/leave-management/internal/user/memory"
	"github.com/frahmantamala/leave-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("Handler", func() {
	var handler *user.Handler

	BeforeEach(func() {
		service := user.NewService(memory.NewUserRepository(), bcrypt.MinCost, logger.Discard())
		_, err := service.Register(context.Background(), user.RegisterDTO{Username: "alice", Password: "pw1", Role: "USER"})
		Expect(err).NotTo(HaveOccurred())
		handler = user.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
	})

	get := func(ctx context.Context) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.GetCurrentUser(rec, req)
		return rec
	}

	It("should return the caller without the password hash", func() {
		ctx := internal.ContextWithActor(context.Background(), coreuser.NewActor("alice", coreuser.RoleUser))
		rec := get(ctx)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).NotTo(ContainSubstring("$2a$"))

		var body user.UserResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Username).To(Equal("alice"))
		Expect(body.Role).To(Equal("USER"))
	})

	It("should answer 401 without an actor", func() {
		Expect(get(context.Background()).Code).To(Equal(http.StatusUnauthorized))
	})

	It("should answer 404 when the account no longer exists", func() {
		ctx := internal.ContextWithActor(context.Background(), coreuser.NewActor("ghost", coreuser.RoleUser))
		Expect(get(ctx).Code).To(Equal(http.StatusNotFound))
	})
})
