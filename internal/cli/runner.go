package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/smarttasks/internal/model"
	"github.com/idilsaglam/smarttasks/internal/tasks"
	"github.com/idilsaglam/smarttasks/internal/tui"
	"github.com/idilsaglam/smarttasks/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options tune output behavior from root flags.
type Options struct {
	Group    bool           // list grouped by pending/done
	Priority model.Priority // used by add when -p is not given

	Out io.Writer
	Err io.Writer
	Now func() time.Time

	// RunTUI starts the interactive view. Defaults to tui.Run.
	RunTUI func(*tasks.Store, tui.Options) error
}

func (o *Options) defaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if !o.Priority.Valid() {
		o.Priority = model.PriorityMedium
	}
	if o.RunTUI == nil {
		o.RunTUI = tui.Run
	}
}

type runner struct {
	s   *tasks.Store
	opt Options
}

// Run dispatches subcommands against s and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, s *tasks.Store, opt Options) int {
	opt.defaults()
	r := runner{s: s, opt: opt}
	if len(args) == 0 {
		r.printHelp()
		return ExitUsage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.printHelp()
		return ExitOK

	case "ls", "list":
		if len(a) > 1 {
			r.fail("usage: smarttasks ls [all|active|completed|high]")
			return ExitUsage
		}
		f := s.CurrentFilter()
		if len(a) == 1 {
			f = model.ParseFilter(a[0])
		}
		return r.doList(f)

	case "add":
		return r.doAdd(a)

	case "done", "toggle":
		if len(a) != 1 {
			r.fail("usage: smarttasks done <index|id>")
			return ExitUsage
		}
		return r.doToggle(a[0])

	case "rm", "delete":
		if len(a) != 1 {
			r.fail("usage: smarttasks rm <index|id>")
			return ExitUsage
		}
		return r.doRemove(a[0])

	case "stats":
		return r.doStats()

	case "clear":
		return r.doClear()

	case "tui":
		if err := r.opt.RunTUI(s, tui.Options{Priority: r.opt.Priority, Now: r.opt.Now}); err != nil {
			r.fail("tui: " + err.Error())
			return ExitError
		}
		return ExitOK
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(r.opt.Err)
	r.printHelp()
	return ExitUsage
}

// PrintHelp writes usage to stdout.
func PrintHelp() { (&runner{opt: Options{Out: os.Stdout}}).printHelp() }

func (r *runner) printHelp() {
	fmt.Fprint(r.opt.Out, `smarttasks - a tiny task manager

Usage:
  smarttasks [flags] <subcommand> [args]

Subcommands:
  add [-p low|medium|high] <text...>   Add a task (text can be multiple words)
  ls [all|active|completed|high]       List tasks, optionally filtered
  done <index|id>                      Toggle completed for a task
  rm <index|id>                        Delete a task
  clear                                Delete every completed task
  stats                                Show total/completed/pending counts
  tui                                  Interactive view

Examples:
  smarttasks add -p high "Call Bob"
  smarttasks ls active
  smarttasks done 2
  smarttasks rm 3
`)
}

func (r *runner) ok(msg string)   { ui.OK(r.opt.Out, msg) }
func (r *runner) fail(msg string) { ui.Fail(r.opt.Err, msg) }

// -------------- subcommand impls ----------------

func (r *runner) doList(f model.Filter) int {
	all := r.s.All()
	st := r.s.Stats()
	th := ui.Current()

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Tasks"),
		ui.C(th.Success, th.SymDone), st.Completed,
		ui.C(th.Pending, th.SymUnchecked), st.Pending,
		ui.C(th.Accent, "Total"), st.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(th.Muted, ui.ProgressBar(st.Completed, st.Total, 28)))
	if f != model.FilterAll {
		lines = append(lines, ui.C(th.Muted, "filter: "+string(f)))
	}
	lines = append(lines, "")

	rows := numbered(all, f)
	if r.opt.Group {
		lines = append(lines, r.groupLines(rows)...)
	} else {
		lines = append(lines, r.flatLines(rows)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Muted, "Tip: add with `smarttasks add -p high \"Water plants\"`"))
	ui.Panel(r.opt.Out, lines)
	return ExitOK
}

func (r *runner) doAdd(args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	prio := fs.String("p", string(r.opt.Priority), "")
	fs.StringVar(prio, "priority", string(r.opt.Priority), "")
	if err := fs.Parse(args); err != nil {
		r.fail("add: " + err.Error())
		return ExitUsage
	}
	p, err := model.ParsePriority(*prio)
	if err != nil {
		r.fail("add: " + err.Error())
		return ExitUsage
	}

	t, err := r.s.Add(strings.Join(fs.Args(), " "), p)
	switch {
	case errors.Is(err, tasks.ErrEmptyText):
		r.fail("add: empty task")
		return ExitUsage
	case err != nil:
		r.fail("add: " + err.Error())
		return ExitError
	}
	if !r.saved() {
		return ExitError
	}
	r.ok(fmt.Sprintf("added %q %s", t.Text, ui.PriorityBadge(t.Priority)))
	return ExitOK
}

func (r *runner) doToggle(ref string) int {
	t, found := r.resolve(ref)
	if !found || !r.s.Toggle(t.ID) {
		r.notFound(ref)
		return ExitOK
	}
	if !r.saved() {
		return ExitError
	}
	t, _ = r.s.Get(t.ID)
	if t.Completed {
		r.ok("completed")
	} else {
		r.ok("reopened")
	}
	return ExitOK
}

func (r *runner) doRemove(ref string) int {
	t, found := r.resolve(ref)
	if !found || !r.s.Delete(t.ID) {
		r.notFound(ref)
		return ExitOK
	}
	if !r.saved() {
		return ExitError
	}
	r.ok("removed")
	return ExitOK
}

func (r *runner) doStats() int {
	st := r.s.Stats()
	fmt.Fprintf(r.opt.Out, "total %d  completed %d  pending %d\n", st.Total, st.Completed, st.Pending)
	return ExitOK
}

func (r *runner) doClear() int {
	n := r.s.ClearCompleted()
	if n > 0 && !r.saved() {
		return ExitError
	}
	r.ok(fmt.Sprintf("cleared %d completed", n))
	return ExitOK
}

// saved reports whether the last mutation reached storage. The process
// exits right after, so a failed write means the change is lost.
func (r *runner) saved() bool {
	if err := r.s.PersistErr(); err != nil {
		r.fail("save: " + err.Error())
		return false
	}
	return true
}

// resolve accepts a 1-based position in the full list or a task id.
func (r *runner) resolve(ref string) (model.Task, bool) {
	if n, err := strconv.Atoi(ref); err == nil {
		all := r.s.All()
		if n >= 1 && n <= len(all) {
			return all[n-1], true
		}
	}
	return r.s.Get(model.TaskID(ref))
}

func (r *runner) notFound(ref string) {
	muted := ui.Current().Muted
	fmt.Fprintln(r.opt.Err, ui.Paint(r.opt.Err, muted, "no task "+ref+" (nothing changed)"))
	fmt.Fprintln(r.opt.Err, ui.Paint(r.opt.Err, muted, "Hint: run `smarttasks ls` to see valid indexes"))
}

// -------------- rendering helpers --------------

type row struct {
	pos  int
	task model.Task
}

// numbered keeps each task's position in the full list so the indexes
// printed under a filter still work with done/rm.
func numbered(all []model.Task, f model.Filter) []row {
	var out []row
	for i, t := range all {
		if f.Match(t) {
			out = append(out, row{pos: i + 1, task: t})
		}
	}
	return out
}

func (r *runner) flatLines(rows []row) []string {
	th := ui.Current()
	if len(rows) == 0 {
		return []string{ui.C(th.Muted, "no tasks")}
	}
	now := r.opt.Now()
	out := make([]string, 0, len(rows))
	for _, rw := range rows {
		it := rw.task
		idx := fmt.Sprintf("%2d.", rw.pos)
		box := th.BoxUnchecked
		color := th.Muted
		if it.Completed {
			box, color = th.BoxChecked, th.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s %s %s",
			ui.Dim(idx), ui.C(color, box), ui.Truncate(it.Text, 80),
			ui.PriorityBadge(it.Priority),
			ui.C(th.Muted, ui.RelativeTime(it.CreatedAt, now))))
	}
	return out
}

func (r *runner) groupLines(rows []row) []string {
	th := ui.Current()
	var pend, done []row
	for _, rw := range rows {
		if rw.task.Completed {
			done = append(done, rw)
		} else {
			pend = append(pend, rw)
		}
	}
	var lines []string
	lines = append(lines, ui.C(th.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, r.flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, r.flatLines(done)...)
	}
	return lines
}
