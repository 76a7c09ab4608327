// Package discovery queries the toolchain for attached serial ports and
// installed board definitions.
//
// Discovery is side-effect-free: every call spawns fresh toolchain queries
// and returns fresh values, so calls may run concurrently with each other
// and with an in-flight build. Nothing is cached — a port list is stale the
// moment a cable moves.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/toolchain, std lib
//   - MUST NOT import: internal/orchestrator, internal/cli
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
	"github.com/TomShaoquan/arduino-panda/internal/toolchain"
)

// maxPlatformQueries bounds the board listall fan-out so a machine with
// many installed platforms doesn't spawn them all at once.
const maxPlatformQueries = 4

// Service answers port and board queries through the toolchain.
type Service struct {
	cli    *toolchain.CLI
	logger zerolog.Logger
}

// NewService creates a discovery Service on top of the given toolchain CLI.
func NewService(cli *toolchain.CLI, logger zerolog.Logger) *Service {
	return &Service{
		cli:    cli,
		logger: logger,
	}
}

// Preflight verifies the toolchain binary is reachable and responsive.
// Both listing calls run it first so a missing binary surfaces as
// ErrToolchainUnavailable rather than a parse error.
func (s *Service) Preflight(ctx context.Context) error {
	version, err := s.cli.Version(ctx)
	if err != nil {
		return err
	}

	s.logger.Debug().Str("version", version).Msg("toolchain preflight ok")
	return nil
}

// ListPorts returns the serial ports the toolchain can see right now.
//
// The toolchain's port JSON has drifted across versions: newer builds nest
// the address under a "port" object, older ones keep it flat. Entries are
// normalized from either shape; entries without any address are skipped.
// A valid but non-array top-level document yields an empty list, not an
// error — some toolchain builds emit an object when no boards are attached.
func (s *Service) ListPorts(ctx context.Context) ([]domain.PortInfo, error) {
	if err := s.Preflight(ctx); err != nil {
		return nil, err
	}

	stdout, stderr, err := s.cli.Run(ctx, toolchain.BoardListArgs())
	if err != nil {
		return nil, fmt.Errorf("board list: %v: %w", err, pandaerrors.ErrToolchainQuery)
	}

	if !gjson.ValidBytes(stdout) {
		s.logger.Debug().Str("stderr", string(stderr)).Msg("port query returned invalid JSON")
		return nil, pandaerrors.Wrap(pandaerrors.ErrToolchainQuery, "board list output is not valid JSON")
	}

	doc := gjson.ParseBytes(stdout)
	if !doc.IsArray() {
		return []domain.PortInfo{}, nil
	}

	ports := make([]domain.PortInfo, 0, len(doc.Array()))
	doc.ForEach(func(_, entry gjson.Result) bool {
		if port, ok := parsePortEntry(entry); ok {
			ports = append(ports, port)
		}
		return true
	})

	s.logger.Debug().Int("count", len(ports)).Msg("ports discovered")
	return ports, nil
}

// parsePortEntry normalizes one port entry from either JSON shape.
func parsePortEntry(entry gjson.Result) (domain.PortInfo, bool) {
	// Prefer the nested shape, fall back to the flat one
	node := entry.Get("port")
	address := node.Get("address").String()
	if address == "" {
		node = entry
		address = node.Get("address").String()
	}
	if address == "" {
		return domain.PortInfo{}, false
	}

	description := node.Get("protocol_label").String()
	vid := node.Get("properties.vid").String()
	pid := node.Get("properties.pid").String()
	if vid != "" && pid != "" {
		description = strings.TrimSpace(fmt.Sprintf("%s (VID:%s PID:%s)", description, vid, pid))
	}

	return domain.PortInfo{
		Address:     address,
		Description: description,
	}, true
}

// ListBoards returns every board supported by the installed platforms.
//
// The platform list itself must parse — a broken toolchain installation is
// an error. Individual platform queries are another matter: one broken
// platform must never block the rest, so per-platform failures are logged
// and skipped. Results keep platform order regardless of query completion
// order.
func (s *Service) ListBoards(ctx context.Context) ([]domain.BoardInfo, error) {
	if err := s.Preflight(ctx); err != nil {
		return nil, err
	}

	platformIDs, err := s.listPlatformIDs(ctx)
	if err != nil {
		return nil, err
	}

	perPlatform := make([][]domain.BoardInfo, len(platformIDs))

	var g errgroup.Group
	g.SetLimit(maxPlatformQueries)
	for i, platformID := range platformIDs {
		g.Go(func() error {
			boards, queryErr := s.listPlatformBoards(ctx, platformID)
			if queryErr != nil {
				// Swallow: one broken platform never aborts the rest
				s.logger.Warn().
					Err(queryErr).
					Str("platform", platformID).
					Msg("skipping platform in board discovery")
				return nil
			}
			perPlatform[i] = boards
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	boards := make([]domain.BoardInfo, 0)
	for _, batch := range perPlatform {
		boards = append(boards, batch...)
	}

	s.logger.Debug().
		Int("platforms", len(platformIDs)).
		Int("boards", len(boards)).
		Msg("boards discovered")
	return boards, nil
}

// listPlatformIDs queries the installed platform list.
func (s *Service) listPlatformIDs(ctx context.Context) ([]string, error) {
	stdout, _, err := s.cli.Run(ctx, toolchain.CoreListArgs())
	if err != nil {
		return nil, fmt.Errorf("core list: %v: %w", err, pandaerrors.ErrToolchainQuery)
	}

	doc := gjson.ParseBytes(stdout)
	if !doc.IsArray() {
		return nil, pandaerrors.Wrap(pandaerrors.ErrToolchainQuery, "core list did not return a platform array")
	}

	ids := make([]string, 0, len(doc.Array()))
	doc.ForEach(func(_, entry gjson.Result) bool {
		if id := entry.Get("id").String(); id != "" {
			ids = append(ids, id)
		}
		return true
	})
	return ids, nil
}

// listPlatformBoards queries the boards one platform supports. Both the
// object shape ({"boards": [...]}) and a bare array are accepted.
func (s *Service) listPlatformBoards(ctx context.Context, platformID string) ([]domain.BoardInfo, error) {
	stdout, _, err := s.cli.Run(ctx, toolchain.BoardListAllArgs(platformID))
	if err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(stdout)
	list := doc.Get("boards")
	if !list.IsArray() {
		if !doc.IsArray() {
			return nil, pandaerrors.Wrapf(pandaerrors.ErrToolchainQuery, "platform %s returned no board array", platformID)
		}
		list = doc
	}

	boards := make([]domain.BoardInfo, 0, len(list.Array()))
	list.ForEach(func(_, entry gjson.Result) bool {
		name := entry.Get("name").String()
		fqbn := entry.Get("fqbn").String()
		if name == "" || fqbn == "" {
			// Entries without a selectable identity are useless downstream
			return true
		}
		boards = append(boards, domain.BoardInfo{
			Name: name,
			FQBN: fqbn,
		})
		return true
	})
	return boards, nil
}
