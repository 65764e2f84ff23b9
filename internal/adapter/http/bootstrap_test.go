package http

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"crmchat/internal/core/telemetry"
	"crmchat/pkg/config"
	. "crmchat/pkg/test"
)

func TestNewServer(t *testing.T) {
	RegisterTestingT(t)

	db := InitTestDB()
	defer db.Close()

	cfg := config.GetDefaultConfig()
	cfg.Port = "3999"

	srv := NewServer(db, telemetry.NewNoOpProbe(), nil, config.NewNopLogger(), cfg)

	Expect(srv.Addr).To(Equal(":3999"))
	Expect(srv.Handler).ToNot(BeNil())
	Expect(srv.ReadTimeout).To(Equal(cfg.ReadTimeout))
	Expect(srv.WriteTimeout).To(Equal(cfg.WriteTimeout))
}

func TestStartServer_StopsWhenContextEnds(t *testing.T) {
	RegisterTestingT(t)

	db := InitTestDB()
	defer db.Close()

	cfg := config.GetDefaultConfig()
	cfg.Port = "0"
	cfg.ShutdownTimeout = time.Second

	logger := config.NewNopLogger()
	srv := NewServer(db, nil, nil, logger, cfg)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- StartServer(ctx, srv, logger, cfg) }()

	cancel()

	Eventually(done, 5*time.Second).Should(Receive(BeNil()))
}
