package leave_test

import (
	"context"
	"errors"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/category"
	"github.com/frahmantamala/leave-management/internal/leave"
	leaveMemory "github.com/frahmantamala/leave-management/internal/leave/memory"
	"github.com/frahmantamala/leave-management/internal/user"
	userMemory "github.com/frahmantamala/leave-management/internal/user/memory"
	"github.com/frahmantamala/leave-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("Leave workflow", func() {
	It("should carry a request from registration to approval", func() {
		ctx := context.Background()
		users := user.NewService(userMemory.NewUserRepository(), bcrypt.MinCost, logger.Discard())
		leaves := leave.NewService(
			leaveMemory.NewLeaveRepository(),
			category.NewService(nil, logger.Discard()),
			logger.Discard(),
		)

		_, err := users.Register(ctx, user.RegisterDTO{Username: "alice", Password: "pw1", Role: "USER"})
		Expect(err).NotTo(HaveOccurred())
		alice, err := users.Authenticate(ctx, "alice", "pw1")
		Expect(err).NotTo(HaveOccurred())

		created, err := leaves.Create(ctx, alice.Actor(), leave.CreateLeaveDTO{
			StartDate:     "2025-06-01",
			EndDate:       "2025-06-05",
			Category:      "VACATION",
			Justification: "trip",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(created.ID).To(Equal(int64(1)))
		Expect(created.Status).To(Equal(leave.StatusPending))

		_, err = users.Register(ctx, user.RegisterDTO{Username: "bob", Password: "pw2", Role: "ADMIN"})
		Expect(err).NotTo(HaveOccurred())
		bob, err := users.Authenticate(ctx, "bob", "pw2")
		Expect(err).NotTo(HaveOccurred())

		decided, err := leaves.Decide(ctx, bob.Actor(), 1, leave.OutcomeApprove)
		Expect(err).NotTo(HaveOccurred())
		Expect(decided.Status).To(Equal(leave.StatusApproved))

		_, err = leaves.Decide(ctx, bob.Actor(), 1, leave.OutcomeDeny)
		Expect(errors.Is(err, internal.ErrAlreadyDecided)).To(BeTrue())

		mine, err := leaves.ListFor(ctx, alice.Actor(), "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(mine).To(HaveLen(1))
		Expect(mine[0].ID).To(Equal(int64(1)))
		Expect(mine[0].Status).To(Equal(leave.StatusApproved))
	})
})
