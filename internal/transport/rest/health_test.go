package rest_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/internal/transport/rest"
	"github.com/frahmantamala/leave-management/pkg/logger"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HealthHandler", func() {
	var base *transport.BaseHandler

	BeforeEach(func() {
		base = transport.NewBaseHandler(logger.Discard())
	})

	get := func(handler http.HandlerFunc) (*httptest.ResponseRecorder, rest.HealthResponse) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		var resp rest.HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return rec, resp
	}

	It("should report the memory store as healthy", func() {
		h := rest.NewHealthHandler(base, nil, internal.DriverMemory)
		rec, resp := get(h.Health)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components).To(HaveKey(internal.DriverMemory))
	})

	Context("with a SQL store", func() {
		var (
			mock sqlmock.Sqlmock
			db   *sqlx.DB
		)

		BeforeEach(func() {
			sqlDB, m, err := sqlmock.New()
			Expect(err).NotTo(HaveOccurred())
			mock = m
			db = sqlx.NewDb(sqlDB, "sqlmock")
			DeferCleanup(func() { _ = db.Close() })
		})

		AfterEach(func() {
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})

		It("should be healthy when the database answers", func() {
			mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

			rec, resp := get(rest.NewHealthHandler(base, db, internal.DriverPostgres).Health)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(resp.Components[internal.DriverPostgres].Status).To(Equal(rest.HealthHealthy))
		})

		It("should answer 503 when the database is unreachable", func() {
			mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("connection refused"))

			rec, resp := get(rest.NewHealthHandler(base, db, internal.DriverPostgres).Health)
			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(resp.Status).To(Equal(rest.HealthUnhealthy))
			Expect(resp.Components[internal.DriverPostgres].Message).To(ContainSubstring("connection refused"))
		})
	})

	It("should answer ping", func() {
		h := rest.NewHealthHandler(base, nil, internal.DriverMemory)
		rec := httptest.NewRecorder()
		h.Ping(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"OK"`))
	})
})
