package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/category"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/leave/memory"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Leave Handler", func() {
	var (
		router http.Handler
		alice  = coreuser.NewActor("alice", coreuser.RoleUser)
		admin  = coreuser.NewActor("root", coreuser.RoleAdmin)
	)

	BeforeEach(func() {
		service := leave.NewService(
			memory.NewLeaveRepository(),
			category.NewService(nil, logger.Discard()),
			logger.Discard(),
		)
		handler := leave.NewHandler(transport.NewBaseHandler(logger.Discard()), service)

		r := chi.NewRouter()
		r.Post("/leaves", handler.CreateLeave)
		r.Get("/leaves", handler.GetAllLeaves)
		r.Get("/leaves/mine", handler.GetMyLeaves)
		r.Get("/leaves/pending", handler.GetPendingLeaves)
		r.Get("/leaves/{id}", handler.GetLeave)
		r.Patch("/leaves/{id}/approve", handler.ApproveLeave)
		r.Patch("/leaves/{id}/deny", handler.DenyLeave)
		r.Patch("/leaves/{id}/cancel", handler.CancelLeave)
		router = r
	})

	serve := func(actor *coreuser.Actor, method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if actor != nil {
			req = req.WithContext(internal.ContextWithActor(context.Background(), *actor))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeError := func(w *httptest.ResponseRecorder) string {
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body.Error.Code
	}

	createTrip := func() leave.LeaveResponse {
		w := serve(&alice, http.MethodPost, "/leaves",
			`{"start_date":"2025-06-01","end_date":"2025-06-05","category":"VACATION","justification":"trip"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created leave.LeaveResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		return created
	}

	It("should create a leave request for the caller", func() {
		created := createTrip()
		Expect(created.ID).To(Equal(int64(1)))
		Expect(created.Requester).To(Equal("alice"))
		Expect(created.Status).To(Equal("PENDING"))
		Expect(created.StartDate).To(Equal("2025-06-01"))
		Expect(created.Days).To(Equal(5))
	})

	It("should answer 400 with field details for invalid input", func() {
		w := serve(&alice, http.MethodPost, "/leaves",
			`{"start_date":"2025-06-05","end_date":"2025-06-01","category":"VACATION","justification":"trip"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeInvalidDateRange)))
	})

	It("should answer 400 for a malformed body", func() {
		w := serve(&alice, http.MethodPost, "/leaves", `{"start_date":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 401 without an actor", func() {
		w := serve(nil, http.MethodGet, "/leaves/mine", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should list the caller's requests", func() {
		createTrip()
		w := serve(&alice, http.MethodGet, "/leaves/mine", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var list leave.LeavesResponse
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list.Leaves).To(HaveLen(1))
	})

	It("should keep reviewer routes for ADMINs", func() {
		createTrip()
		Expect(serve(&alice, http.MethodGet, "/leaves/pending", "").Code).To(Equal(http.StatusForbidden))
		Expect(serve(&alice, http.MethodGet, "/leaves", "").Code).To(Equal(http.StatusForbidden))
		Expect(serve(&admin, http.MethodGet, "/leaves/pending", "").Code).To(Equal(http.StatusOK))
		Expect(serve(&admin, http.MethodGet, "/leaves", "").Code).To(Equal(http.StatusOK))
	})

	It("should approve once and then answer 409", func() {
		created := createTrip()

		w := serve(&admin, http.MethodPatch, "/leaves/1/approve", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var decided leave.LeaveResponse
		Expect(json.NewDecoder(w.Body).Decode(&decided)).To(Succeed())
		Expect(decided.ID).To(Equal(created.ID))
		Expect(decided.Status).To(Equal("APPROVED"))
		Expect(decided.DecidedBy).To(Equal("root"))

		w = serve(&admin, http.MethodPatch, "/leaves/1/deny", "")
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(decodeError(w)).To(Equal(string(internal.ErrCodeAlreadyDecided)))
	})

	It("should forbid an ADMIN from cancelling someone else's request", func() {
		createTrip()
		w := serve(&admin, http.MethodPatch, "/leaves/1/cancel", "")
		Expect(w.Code).To(Equal(http.StatusForbidden))

		w = serve(&alice, http.MethodPatch, "/leaves/1/cancel", "")
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("should answer 404 for unknown ids and 400 for malformed ones", func() {
		w := serve(&alice, http.MethodGet, "/leaves/77", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(decodeError(w)).To(Equal(string(internal.ErrCodeLeaveNotFound)))

		Expect(serve(&alice, http.MethodGet, "/leaves/abc", "").Code).To(Equal(http.StatusBadRequest))
	})
})
