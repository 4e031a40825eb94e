package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/timeutil"
)

// env is what every command runs against: the resolved configuration, the
// open store and a service that prints entries as they are displayed.
type env struct {
	cfg   store.Config
	store *store.Store
	svc   *app.Service
	pp    *printers.PrettyPrint
	logs  io.Closer
}

func openEnv(dbo *options.DBOptions, interactive bool) (*env, error) {
	cfg, err := dbo.Config()
	if err != nil {
		return nil, err
	}
	logs, err := configureLogging(cfg, dbo.LogLevel, interactive)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		closeLog(logs)
		return nil, err
	}
	e := &env{
		cfg:   cfg,
		store: st,
		pp:    &printers.PrettyPrint{},
		logs:  logs,
	}
	e.svc = &app.Service{
		Store:     st,
		Clock:     timeutil.SystemClock{},
		WeekStart: cfg.WeekStart(),
	}
	e.svc.Presenter = app.PresenterFunc(e.printEntry)
	return e, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		log.WithError(err).Warn("closing store")
	}
	closeLog(e.logs)
}

func (e *env) printEntry(ctx context.Context, r *entry.Record) error {
	summaries := make(map[entry.Kind]string, 2)
	for _, k := range entry.Kinds() {
		s, err := e.svc.Summary(ctx, r, k)
		if err != nil {
			return err
		}
		summaries[k] = s
	}
	e.pp.Entry(r, summaries)
	return nil
}

// report prints user-facing errors as a message and lets everything else
// through to the output options.
func (e *env) report(oo *options.OutputOptions, err error) error {
	if err == nil {
		return nil
	}
	if app.IsUserFacing(err) && !oo.JSON {
		e.pp.Message(err.Error())
		return nil
	}
	return oo.HandleError(err)
}

var errNoSuchItem = errors.New("no such item")

// itemIndex finds the item named by --id, or else by the first argument as a
// name or id. It returns the arguments left over.
func itemIndex(items []*entry.Item, ido *options.IDOptions, args []string) (int, []string, error) {
	if ido.ID != "" {
		for i, it := range items {
			if it.ID == ido.ID {
				return i, args, nil
			}
		}
		return -1, args, fmt.Errorf("%w: id %q", errNoSuchItem, ido.ID)
	}
	if len(args) == 0 {
		return -1, args, errors.New("name an item or pass --id")
	}
	for i, it := range items {
		if it.ID == args[0] || it.Name == args[0] {
			return i, args[1:], nil
		}
	}
	return -1, args, fmt.Errorf("%w: %q", errNoSuchItem, args[0])
}

func notFoundOr(err error, date time.Time) error {
	if err != nil {
		return err
	}
	return &app.NotFoundError{Date: entry.Day(date)}
}
