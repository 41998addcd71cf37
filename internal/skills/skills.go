package skills

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	dbfs "github.com/garnizeh/incollege/db"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

// Separator splits a catalog line into name and description.
const Separator = "$$$"

type Service struct {
	repo   repository.SkillRepo
	logger *slog.Logger
}

func NewService(repo repository.SkillRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{repo: repo, logger: logger}
}

// Parse reads one skill per line as name$$$description. Blank lines are
// skipped; any other line without the separator is an error.
func Parse(r io.Reader) ([]models.Skill, error) {
	var out []models.Skill
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		name, desc, ok := strings.Cut(text, Separator)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("skills line %d: want name%sdescription", line, Separator)
		}
		out = append(out, models.Skill{Name: name, Description: strings.TrimSpace(desc)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read skills: %w", err)
	}
	return out, nil
}

// Seed loads the catalog from r when the skills table is empty and reports
// how many skills were inserted. A populated table is left alone.
func (s *Service) Seed(ctx context.Context, r io.Reader) (int, error) {
	n, err := s.repo.CountSkills(ctx)
	if err != nil {
		return 0, fmt.Errorf("count skills: %w", err)
	}
	if n > 0 {
		s.logger.Debug("skills already seeded", slog.Int64("count", n))
		return 0, nil
	}

	list, err := Parse(r)
	if err != nil {
		return 0, err
	}
	if err := s.repo.CreateSkills(ctx, list); err != nil {
		return 0, fmt.Errorf("create skills: %w", err)
	}

	s.logger.Info("skills seeded", slog.Int("count", len(list)))
	return len(list), nil
}

// SeedFile seeds from the catalog at path, or from the embedded catalog when
// path is empty.
func (s *Service) SeedFile(ctx context.Context, path string) (int, error) {
	var (
		f   io.ReadCloser
		err error
	)
	if path == "" {
		f, err = dbfs.SeedFiles.Open("seed/skills.txt")
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return 0, fmt.Errorf("open skills: %w", err)
	}
	defer f.Close()
	return s.Seed(ctx, f)
}

func (s *Service) List(ctx context.Context) ([]models.Skill, error) {
	out, err := s.repo.ListSkills(ctx)
	if err != nil {
		s.logger.Error("list skills", slog.Any("err", err))
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return out, nil
}
