package application_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
	"github.com/oksasatya/courseitda/pkg/helpers"
	"github.com/oksasatya/courseitda/pkg/mailer"
	mailtpl "github.com/oksasatya/courseitda/pkg/mailer/templates"
)

var _ = Describe("AuthService", func() {
	var (
		ctx      context.Context
		store    *memory.Store
		kv       *memory.KV
		jobs     *fakeJobs
		sessions *application.SessionStore
		svc      *application.AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New(nil)
		kv = memory.NewKV()
		jobs = &fakeJobs{}
		sessions = application.NewSessionStore(kv)
		svc = application.NewAuthService(store.Users(), helpers.MockHasher{}, helpers.MockTokenCodec{}, sessions, jobs, helpers.NewNopLogger())
	})

	register := func(email string) error {
		_, err := svc.Register(ctx, application.RegisterInput{Email: email, Password: "demo123", Nickname: "demo"})
		return err
	}

	Describe("Register", func() {
		It("stores the user with the reversible hash and queues a welcome email", func() {
			u, err := svc.Register(ctx, application.RegisterInput{Email: "demo@courseitda.com", Password: "demo123", Nickname: "데모유저"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).NotTo(BeEmpty())
			Expect(u.Password).To(Equal("ZGVtbzEyMw=="))
			Expect(u.CreatedAt).To(BeTemporally("~", time.Now(), time.Minute))

			Expect(jobs.jobs).To(HaveLen(1))
			job := jobs.jobs[0].(mailer.EmailJob)
			Expect(job.To).To(Equal("demo@courseitda.com"))
			Expect(job.Template).To(Equal(mailtpl.Welcome))
			Expect(job.Data).To(HaveKeyWithValue("Name", "데모유저"))
		})

		It("still succeeds when the mail queue fails", func() {
			jobs.err = errors.New("broker down")
			Expect(register("a@b.co")).To(Succeed())
		})

		DescribeTable("rejects invalid input",
			func(email, password, nickname string) {
				_, err := svc.Register(ctx, application.RegisterInput{Email: email, Password: password, Nickname: nickname})
				Expect(err).To(MatchError(application.ErrValidation))
			},
			Entry("empty email", "", "demo123", "demo"),
			Entry("empty password", "a@b.co", "", "demo"),
			Entry("empty nickname", "a@b.co", "demo123", ""),
			Entry("short password", "a@b.co", "12345", "demo"),
			Entry("no at sign", "ab.co", "demo123", "demo"),
			Entry("no dot in domain", "a@bco", "demo123", "demo"),
			Entry("whitespace", "a b@c.co", "demo123", "demo"),
		)

		It("rejects a second account with the same email", func() {
			Expect(register("dup@b.co")).To(Succeed())
			Expect(register("dup@b.co")).To(MatchError(application.ErrConflict))

			u, _, err := svc.Login(ctx, "dup@b.co", "demo123")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("dup@b.co"))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			Expect(register("demo@courseitda.com")).To(Succeed())
		})

		It("returns the user and a token that verifies back to the user", func() {
			u, token, err := svc.Login(ctx, "demo@courseitda.com", "demo123")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())

			id, err := svc.VerifyToken(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(u.ID))
		})

		It("records the session and Logout clears it", func() {
			u, token, err := svc.Login(ctx, "demo@courseitda.com", "demo123")
			Expect(err).NotTo(HaveOccurred())

			sess, err := sessions.Load(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.Token).To(Equal(token))
			Expect(sess.User.Email).To(Equal("demo@courseitda.com"))

			Expect(svc.Logout(ctx, u.ID)).To(Succeed())
			sess, err = sessions.Load(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess).To(BeNil())
		})

		It("fails with AuthError on a wrong password", func() {
			_, _, err := svc.Login(ctx, "demo@courseitda.com", "wrong1")
			Expect(err).To(MatchError(application.ErrAuth))
		})

		It("fails with NotFoundError for an unknown email", func() {
			_, _, err := svc.Login(ctx, "ghost@courseitda.com", "demo123")
			Expect(err).To(MatchError(application.ErrNotFound))
		})

		It("fails with ValidationError when a credential is empty", func() {
			_, _, err := svc.Login(ctx, "", "demo123")
			Expect(err).To(MatchError(application.ErrValidation))
			_, _, err = svc.Login(ctx, "demo@courseitda.com", "")
			Expect(err).To(MatchError(application.ErrValidation))
		})
	})

	Describe("VerifyToken", func() {
		It("rejects malformed tokens", func() {
			_, err := svc.VerifyToken(ctx, "%%%")
			Expect(err).To(MatchError(application.ErrAuth))
		})

		It("rejects tokens of users that do not exist", func() {
			token, err := helpers.MockTokenCodec{}.Issue("ghost", time.Now())
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.VerifyToken(ctx, token)
			Expect(err).To(MatchError(application.ErrAuth))
		})
	})

	Describe("Me", func() {
		It("returns NotFoundError for an unknown id", func() {
			_, err := svc.Me(ctx, "nobody")
			Expect(err).To(MatchError(application.ErrNotFound))
		})
	})

	Context("with bcrypt and JWT", func() {
		It("registers, logs in and verifies", func() {
			svc = application.NewAuthService(store.Users(), helpers.BcryptHasher{Cost: 4}, helpers.NewJWTManager("secret", time.Hour), nil, nil, nil)
			u, err := svc.Register(ctx, application.RegisterInput{Email: "real@b.co", Password: "secret1", Nickname: "real"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Password).NotTo(Equal("secret1"))

			_, token, err := svc.Login(ctx, "real@b.co", "secret1")
			Expect(err).NotTo(HaveOccurred())
			id, err := svc.VerifyToken(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(u.ID))
		})
	})
})
