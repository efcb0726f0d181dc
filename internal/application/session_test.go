package application_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
)

var _ = Describe("SettingsService", func() {
	var (
		ctx context.Context
		kv  *memory.KV
		svc *application.SettingsService
	)

	BeforeEach(func() {
		ctx = context.Background()
		kv = memory.NewKV()
		svc = application.NewSettingsService(kv)
	})

	It("keeps keys per user", func() {
		Expect(svc.SetKakaoRestKey(ctx, "u1", "rest")).To(Succeed())
		Expect(svc.SetKakaoJSKey(ctx, "u1", "js")).To(Succeed())

		st, err := svc.Get(ctx, "u1")
		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(Equal(application.Settings{KakaoRestKey: "rest", KakaoJSKey: "js"}))

		st, err = svc.Get(ctx, "u2")
		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(Equal(application.Settings{}))
	})

	It("removes a key set to empty", func() {
		Expect(svc.SetKakaoRestKey(ctx, "u1", "rest")).To(Succeed())
		Expect(svc.SetKakaoRestKey(ctx, "u1", "")).To(Succeed())
		_, ok, err := kv.Load(ctx, "user:u1:"+application.KakaoRestKeyKey)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})
})
