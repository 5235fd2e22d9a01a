package internal_test

import (
	"time"

	"github.com/frahmantamala/leave-management/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() internal.Config {
	return internal.Config{
		Server: internal.ServerConfig{
			Port:              8080,
			AllowedOrigins:    "https://hr.example.com, *",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
		},
		Database: internal.DatabaseConfig{
			Driver:       internal.DriverPostgres,
			Source:       "postgres://localhost/leave",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
		Security: internal.SecurityConfig{
			AccessTokenSecret:    "0123456789abcdef0123456789abcdef-access",
			RefreshTokenSecret:   "0123456789abcdef0123456789abcdef-refresh",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 24 * time.Hour,
			BCryptCost:           12,
		},
		Leave: internal.LeaveConfig{Categories: []string{"VACATION", "EMERGENCY"}},
		Observability: internal.ObservabilityConfig{
			Logging: internal.LoggingConfig{Level: "info", Format: "json"},
		},
	}
}

var _ = Describe("Config", func() {
	It("should accept a complete configuration", func() {
		cfg := validConfig()
		Expect(cfg.Validate()).To(Succeed())
	})

	DescribeTable("should reject",
		func(mutate func(*internal.Config), fragment string) {
			cfg := validConfig()
			mutate(&cfg)
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(fragment))
		},
		Entry("an out of range port", func(c *internal.Config) { c.Server.Port = 70000 }, "invalid port"),
		Entry("an unknown driver", func(c *internal.Config) { c.Database.Driver = "mysql" }, "unsupported driver"),
		Entry("a sql driver without a source", func(c *internal.Config) { c.Database.Source = "" }, "source is required"),
		Entry("more idle than open connections", func(c *internal.Config) { c.Database.MaxIdleConns = 20 }, "max_idle_conns"),
		Entry("a short access secret", func(c *internal.Config) { c.Security.AccessTokenSecret = "short" }, "access token secret"),
		Entry("identical token secrets", func(c *internal.Config) {
			c.Security.RefreshTokenSecret = c.Security.AccessTokenSecret
		}, "must differ"),
		Entry("duplicate categories", func(c *internal.Config) {
			c.Leave.Categories = []string{"VACATION", "VACATION"}
		}, "duplicate category"),
		Entry("a blank category", func(c *internal.Config) { c.Leave.Categories = []string{" "} }, "must not be blank"),
		Entry("an unknown log level", func(c *internal.Config) { c.Observability.Logging.Level = "trace" }, "invalid level"),
	)

	It("should not require a source for the memory driver", func() {
		cfg := validConfig()
		cfg.Database = internal.DatabaseConfig{Driver: internal.DriverMemory}
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should hand the configured source to drivers as the DSN", func() {
		cfg := validConfig()
		Expect(cfg.Database.GetDSN()).To(Equal("postgres://localhost/leave"))
	})

	It("should split allowed origins", func() {
		cfg := validConfig()
		Expect(cfg.Server.Origins()).To(Equal([]string{"https://hr.example.com", "*"}))
	})

	Context("when loading from the environment", func() {
		It("should read overrides and fall back to defaults", func() {
			GinkgoT().Setenv("HTTP_PORT", "9090")
			GinkgoT().Setenv("DB_DRIVER", "memory")
			GinkgoT().Setenv("JWT_ACCESS_TTL", "5m")
			GinkgoT().Setenv("LEAVE_CATEGORIES", "VACATION, SICK ,")

			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.Server.Port).To(Equal(9090))
			Expect(cfg.Database.Driver).To(Equal(internal.DriverMemory))
			Expect(cfg.Security.AccessTokenDuration).To(Equal(5 * time.Minute))
			Expect(cfg.Security.BCryptCost).To(Equal(12))
			Expect(cfg.Leave.Categories).To(Equal([]string{"VACATION", "SICK"}))
		})

		It("should ignore unparsable numbers", func() {
			GinkgoT().Setenv("HTTP_PORT", "eighty")
			Expect(internal.LoadConfigFromEnv().Server.Port).To(Equal(8080))
		})
	})
})
