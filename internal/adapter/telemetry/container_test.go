package telemetry

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"crmchat/pkg/config"
)

func TestNewContainer_WithoutExporter(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()

	cfg := ConfigFrom(config.GetDefaultConfig())
	Expect(cfg.OTLPEndpoint).To(BeEmpty())

	container, err := NewContainer(ctx, cfg, config.NewNopLogger())

	Expect(err).ToNot(HaveOccurred())
	Expect(container.AppMetrics).ToNot(BeNil())
	Expect(container.MetricsServer.Addr).To(Equal(":9091"))
	Expect(container.NewTelemetryProbe()).ToNot(BeNil())

	families, err := container.PrometheusRegistry.Gather()
	Expect(err).ToNot(HaveOccurred())
	Expect(families).ToNot(BeEmpty())

	Expect(container.Shutdown(ctx)).To(Succeed())
}
