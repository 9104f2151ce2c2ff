package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"kangaroo/internal/source"
	"kangaroo/internal/trace"
)

// SourceExt is the extension ParseDir looks for.
const SourceExt = ".kg"

// ListSourceFiles возвращает отсортированный список всех *.kg файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.kg file under dir line by line, up to jobs files
// at a time. Results follow the sorted file order. A file that fails to load
// gets a FileResult with Err set; the other files are still parsed.
func ParseDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse-dir")
	defer span.End(dir)

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен на запись: загружаем всё до запуска воркеров
	results := make([]FileResult, len(files))
	loaded := make([]*source.File, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	for i, path := range files {
		file, err := loadFile(ctx, fileSet, path)
		if err != nil {
			results[i] = FileResult{Path: path, FileSet: fileSet, Err: err}
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError})
			continue
		}
		loaded[i] = file
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, file := range loaded {
		if file == nil {
			continue
		}
		g.Go(func() error {
			emit(opts.Progress, Event{File: files[i], Stage: StageParse, Status: StatusWorking})
			res, err := parseLinesIn(gctx, fileSet, file, opts)
			if err != nil {
				emit(opts.Progress, Event{File: files[i], Stage: StageParse, Status: StatusError})
				return err
			}
			results[i] = *res
			stage := StageParse
			if res.Cached {
				stage = StageCache
			}
			emit(opts.Progress, Event{File: files[i], Stage: stage, Status: StatusDone, Failed: res.Failed()})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	span.WithExtra("files", itoa(len(files)))
	return fileSet, results, nil
}
