package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"

	"stitch-client/device"
	"stitch-client/infrastructure/api"
	"stitch-client/services"
	"stitch-client/validation"
)

const stepTimeout = 60 * time.Second

type BaseHTTPSuite struct {
	suite.Suite
	Config  Config
	Client  *api.Client
	Service *services.ProcessingService
}

// SetupSuite loads the environment configuration and builds the client
// stack against the configured address. The whole suite is skipped when
// no address is set, so it stays out of the regular unit-test run.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.Addr == "" {
		s.T().Skip("STITCH_E2E_ADDR not set, skipping end-to-end suite")
	}

	logger := logs.GetLoggerFromString("ERROR")
	profile := device.Derive(s.Config.UserAgent)

	s.Client = api.NewClient(s.Config.Addr, profile, api.DefaultRetryPolicy(), logger)
	s.Service = services.NewProcessingService(
		validation.NewValidator(profile, logger),
		s.Client,
		logger,
		time.Second,
	)
}

// Step prints a colorized header and runs fn with a bounded context.
func (s *BaseHTTPSuite) Step(name string, fn func(ctx context.Context)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), stepTimeout)
	defer cancel()

	fn(ctx)
}

// Dump logs a value as indented JSON when E2E_DEBUG_JSON is enabled.
func (s *BaseHTTPSuite) Dump(label string, value any) {
	if !s.Config.DebugJSON {
		return
	}
	encoded, err := json.MarshalIndent(value, "", "  ")
	s.Require().NoError(err)
	s.T().Logf("%s:\n%s", label, encoded)
}
