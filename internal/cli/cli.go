package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/catalog"
	"github.com/jsp1440/orchid-continuum-sub004/internal/export"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
	"github.com/jsp1440/orchid-continuum-sub004/internal/requests"
	"github.com/jsp1440/orchid-continuum-sub004/internal/services"
)

type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }

func Usage() string {
	return `carectl: offline orchid care calendars

Usage:
  carectl generate [--format table|ics|json|csv] [--out <file>] <request.json>
  carectl summary <calendar.json>
  carectl upcoming [--from YYYY-MM-DD] [--days <n>] <calendar.json>
  carectl weather <calendar.json> <weather.json>
  carectl complete <calendar.json> <task-id>
  carectl genera

Calendar files are the JSON export format; weather and complete rewrite them in place.
`
}

// Run executes one command, writing its output to stdout.
func Run(args []string, stdout io.Writer) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return run(services.NewEngine(catalog.Default(), logger), args, stdout)
}

func run(engine *services.Engine, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return UsageError{Message: "missing command"}
	}

	switch args[0] {
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, Usage())
		return nil
	case "generate":
		return runGenerate(engine, args[1:], stdout)
	case "summary":
		if len(args) != 2 {
			return UsageError{Message: "summary requires exactly 1 argument: <calendar.json>"}
		}
		return runSummary(args[1], stdout)
	case "upcoming":
		return runUpcoming(engine, args[1:], stdout)
	case "weather":
		if len(args) != 3 {
			return UsageError{Message: "weather requires exactly 2 arguments: <calendar.json> <weather.json>"}
		}
		return runWeather(engine, args[1], args[2], stdout)
	case "complete":
		if len(args) != 3 {
			return UsageError{Message: "complete requires exactly 2 arguments: <calendar.json> <task-id>"}
		}
		return runComplete(engine, args[1], args[2], stdout)
	case "genera":
		if len(args) != 1 {
			return UsageError{Message: "genera takes no arguments"}
		}
		for _, genus := range engine.Catalog().Genera() {
			fmt.Fprintln(stdout, genus)
		}
		return nil
	default:
		return UsageError{Message: fmt.Sprintf("unknown command: %q", args[0])}
	}
}

func runGenerate(engine *services.Engine, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	formatStr := fs.String("format", "table", "output format")
	out := fs.String("out", "", "write output to a file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return UsageError{Message: err.Error()}
	}
	if fs.NArg() != 1 {
		return UsageError{Message: "generate requires exactly 1 argument: <request.json>"}
	}

	var format export.Format
	if *formatStr != "table" {
		parsed, err := export.ParseFormat(*formatStr)
		if err != nil {
			return UsageError{Message: err.Error()}
		}
		format = parsed
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var body requests.Generate
	if err := decoder.Decode(&body); err != nil {
		return fmt.Errorf("parse request %s: %w", fs.Arg(0), err)
	}

	request, err := body.Build(nil)
	if err != nil {
		return err
	}
	calendar, err := engine.Generate(request)
	if err != nil {
		return err
	}

	var output []byte
	if format == "" {
		output = []byte(RenderCalendar(calendar))
	} else {
		output, err = export.Render(calendar, format)
		if err != nil {
			return err
		}
	}

	if *out != "" {
		if err := atomicWriteFile(*out, output, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *out, err)
		}
		fmt.Fprintf(stdout, "wrote %d tasks to %s\n", len(calendar.Tasks), *out)
		return nil
	}
	_, err = stdout.Write(output)
	return err
}

func runSummary(path string, stdout io.Writer) error {
	calendar, err := loadCalendar(path)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, RenderSummary(calendar, services.Summarize(calendar)))
	return nil
}

func runUpcoming(engine *services.Engine, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("upcoming", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fromStr := fs.String("from", "", "first day (defaults to today)")
	days := fs.Int("days", 7, "number of days to include")

	if err := fs.Parse(args); err != nil {
		return UsageError{Message: err.Error()}
	}
	if fs.NArg() != 1 {
		return UsageError{Message: "upcoming requires exactly 1 argument: <calendar.json>"}
	}
	if *days < 1 {
		return UsageError{Message: "--days must be at least 1"}
	}

	from := engine.Today()
	if *fromStr != "" {
		parsed, err := time.Parse(models.DateLayout, *fromStr)
		if err != nil {
			return UsageError{Message: fmt.Sprintf("invalid --from %q", *fromStr)}
		}
		from = parsed
	}

	calendar, err := loadCalendar(fs.Arg(0))
	if err != nil {
		return err
	}

	upcoming := services.UpcomingTasks(calendar, from, *days)
	if len(upcoming) == 0 {
		fmt.Fprintln(stdout, "no upcoming tasks")
		return nil
	}
	fmt.Fprint(stdout, RenderTasks(upcoming))
	return nil
}

func runWeather(engine *services.Engine, calendarPath, weatherPath string, stdout io.Writer) error {
	calendar, err := loadCalendar(calendarPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(weatherPath)
	if err != nil {
		return fmt.Errorf("read weather: %w", err)
	}
	var body requests.Weather
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("parse weather %s: %w", weatherPath, err)
	}
	pattern, err := body.Pattern()
	if err != nil {
		return err
	}

	changed, err := engine.ApplyWeather(calendar, pattern)
	if err != nil {
		return err
	}
	if err := saveCalendar(calendarPath, calendar); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d tasks changed\n", changed)
	return nil
}

func runComplete(engine *services.Engine, calendarPath, taskID string, stdout io.Writer) error {
	calendar, err := loadCalendar(calendarPath)
	if err != nil {
		return err
	}

	task, err := engine.CompleteTask(calendar, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskAlreadyComplete) {
			fmt.Fprintf(stdout, "already completed: %s\n", task.Description)
			return nil
		}
		return err
	}
	if err := saveCalendar(calendarPath, calendar); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "completed: %s\n", task.Description)
	return nil
}

func loadCalendar(path string) (*models.CareCalendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	calendar, err := export.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse calendar %s: %w", path, err)
	}
	return calendar, nil
}

func saveCalendar(path string, calendar *models.CareCalendar) error {
	data, err := export.JSON(calendar)
	if err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}
