package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/internal/user"
	"github.com/frahmantamala/leave-management/internal/user/memory"
	"github.com/frahmantamala/leave-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("Auth Handler", func() {
	var (
		handler *auth.Handler
		rbac    *auth.RBACAuthorization
	)

	BeforeEach(func() {
		base := transport.NewBaseHandler(logger.Discard())
		users := user.NewService(memory.NewUserRepository(), bcrypt.MinCost, logger.Discard())
		service := auth.NewService(users, auth.NewJWTTokenGenerator(testSecurityConfig()), logger.Discard())
		handler = auth.NewHandler(base, service)
		rbac = auth.NewRBACAuthorization(base)
	})

	post := func(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w := httptest.NewRecorder()
		h(w, req)
		return w
	}

	login := func(username, password string) auth.LoginResponse {
		w := post(handler.Login, `{"username":"`+username+`","password":"`+password+`"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp auth.LoginResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	echoActor := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := internal.ActorFromContext(r.Context())
		Expect(ok).To(BeTrue())
		w.Header().Set("X-Actor", actor.Username+"/"+string(actor.Role))
		w.WriteHeader(http.StatusNoContent)
	})

	It("should register and reject the same username twice", func() {
		w := post(handler.Register, `{"username":"alice","password":"pw1","role":"USER"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).NotTo(ContainSubstring("pw1"))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))

		w = post(handler.Register, `{"username":"alice","password":"pw2","role":"ADMIN"}`)
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeAlreadyExists)))
	})

	It("should reject unknown JSON fields", func() {
		w := post(handler.Register, `{"username":"alice","password":"pw1","role":"USER","admin":true}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 401 for wrong credentials", func() {
		post(handler.Register, `{"username":"alice","password":"pw1","role":"USER"}`)
		w := post(handler.Login, `{"username":"alice","password":"nope"}`)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeAuthFailure)))
	})

	It("should rotate tokens through the refresh endpoint", func() {
		post(handler.Register, `{"username":"alice","password":"pw1","role":"USER"}`)
		resp := login("alice", "pw1")

		w := post(handler.RefreshToken, `{"refresh_token":"`+resp.RefreshToken+`"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = post(handler.RefreshToken, `{"refresh_token":""}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	Describe("AuthMiddleware", func() {
		It("should put the actor in the context for a valid bearer token", func() {
			post(handler.Register, `{"username":"alice","password":"pw1","role":"USER"}`)
			resp := login("alice", "pw1")

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
			w := httptest.NewRecorder()
			handler.AuthMiddleware(echoActor).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Header().Get("X-Actor")).To(Equal("alice/USER"))
		})

		It("should answer 401 without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()
			handler.AuthMiddleware(echoActor).ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should answer 401 for a malformed token", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer abc.def.ghi")
			w := httptest.NewRecorder()
			handler.AuthMiddleware(echoActor).ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("RequireAdmin", func() {
		It("should let ADMINs through and stop everyone else", func() {
			post(handler.Register, `{"username":"alice","password":"pw1","role":"USER"}`)
			post(handler.Register, `{"username":"bob","password":"pw2","role":"ADMIN"}`)
			chain := handler.AuthMiddleware(rbac.RequireAdmin()(echoActor))

			for _, tc := range []struct {
				username, password string
				status             int
			}{
				{"alice", "pw1", http.StatusForbidden},
				{"bob", "pw2", http.StatusNoContent},
			} {
				resp := login(tc.username, tc.password)
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
				w := httptest.NewRecorder()
				chain.ServeHTTP(w, req)
				Expect(w.Code).To(Equal(tc.status))
			}
		})
	})
})
