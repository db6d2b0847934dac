package main

import (
	"context"
	"io"
	"os"

	"minmod/internal/domain/entity"
	"minmod/internal/domain/repository"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// progressRepository advances a progress bar once per fetched commodity.
type progressRepository struct {
	repository.SiteRepository
	bar *progressbar.ProgressBar
}

// withProgress wraps repo with a progress bar when w is a terminal.
func withProgress(repo repository.SiteRepository, total int, description string, w io.Writer) repository.SiteRepository {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return repo
	}

	return &progressRepository{
		SiteRepository: repo,
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(w),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (p *progressRepository) FindByCommodity(ctx context.Context, commodity string) (entity.SiteTable, error) {
	table, err := p.SiteRepository.FindByCommodity(ctx, commodity)
	_ = p.bar.Add(1)

	return table, err
}
