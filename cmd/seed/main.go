package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/courseitda/config"
	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/container"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
	"github.com/oksasatya/courseitda/internal/router"
	"github.com/oksasatya/courseitda/pkg/helpers"
)

const (
	demoEmail    = "demo@courseitda.com"
	demoPassword = "demo123"
	demoNickname = "데모유저"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	store, closeStore, err := container.OpenStore(ctx, cfg, nil, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	n, err := store.Users().Count(ctx)
	if err != nil {
		log.Fatalf("failed to count users: %v", err)
	}
	if n > 0 {
		fmt.Printf("store already has %d user(s); skipping seed\n", n)
		return
	}

	deps := router.Deps{Config: cfg, Logger: logger, Store: store, KV: memory.NewKV()}
	if cfg.PasswordHasher == config.HasherBcrypt {
		deps.Hasher = helpers.BcryptHasher{}
	}
	svc := router.BuildServices(deps)

	u, err := svc.Auth.Register(ctx, application.RegisterInput{
		Email:    demoEmail,
		Password: demoPassword,
		Nickname: demoNickname,
	})
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s nickname=%s password=%s\n", u.ID, u.Email, u.Nickname, demoPassword)

	ws, err := svc.Workspaces.Create(ctx, application.WorkspaceInput{
		OwnerID:   u.ID,
		Title:     "홍대 데이트 코스",
		Headcount: 2,
		Date:      time.Now().Format("2006-01-02"),
	})
	if err != nil {
		log.Fatalf("failed to seed workspace: %v", err)
	}
	fmt.Printf("seeded workspace: id=%s title=%s\n", ws.ID, ws.Title)

	for _, name := range []string{"점심", "카페"} {
		c, err := svc.Categories.Add(ctx, ws.ID, name)
		if err != nil {
			log.Fatalf("failed to seed category %q: %v", name, err)
		}
		fmt.Printf("seeded category: id=%s name=%s\n", c.ID, c.Name)
	}
}
