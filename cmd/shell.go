package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/dugout"
	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/report"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session for scoring a game",
	Long: `Open a persistent session against the database. Pick a batter with 'use'
and record plate appearances with '+ H', '+ AB 4', '- SO' and so on.
Type 'help' for available commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

// repl holds the interactive state: the service and the batter being scored.
type repl struct {
	svc     *dugout.Service
	out     io.Writer
	errOut  io.Writer
	current *model.Player
}

func runShell(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	if !s.cfg.Shell.Color {
		color.NoColor = true
	}

	team, err := s.svc.TeamName()
	if err != nil {
		return err
	}
	cGreeting.Printf("dugout shell: %s\n", team)
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	r := &repl{svc: s.svc, out: os.Stdout, errOut: os.Stderr}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("dugout")
		if r.current != nil {
			cMuted.Printf(" [%s]", r.current.Name)
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		if quit := r.exec(scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one shell line and reports whether the session should end.
func (r *repl) exec(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	cmd, args := tokens[0], tokens[1:]

	var err error
	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		r.help()
	case "roster":
		err = r.roster(strings.Join(args, " "))
	case "use":
		if len(args) == 0 {
			cError.Fprintln(r.errOut, "usage: use <player>")
			return false
		}
		err = r.use(strings.Join(args, " "))
	case "+", "-":
		err = r.adjust(cmd == "-", args)
	case "set":
		err = r.set(args)
	case "show":
		err = r.show(args)
	case "table":
		var rows []dugout.PlayerStats
		if rows, err = r.svc.TeamStats(); err == nil {
			report.PrintStatsTable(r.out, rows)
		}
	case "schedule":
		var upcoming, completed []model.Game
		if upcoming, completed, err = r.svc.Schedule(); err == nil {
			report.PrintSchedule(r.out, "Upcoming", upcoming)
			report.PrintSchedule(r.out, "Completed", completed)
		}
	case "summary":
		var ov model.TeamOverview
		if ov, err = r.svc.Overview(); err == nil {
			report.PrintTeamSummary(r.out, ov)
		}
	default:
		cWarn.Fprintf(r.errOut, "unknown command %q, type 'help'\n", cmd)
	}
	if err != nil {
		cError.Fprintf(r.errOut, "error: %v\n", err)
	}
	return false
}

func (r *repl) help() {
	fmt.Fprintln(r.out)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"roster [filter]", "list players"},
		{"use <player>", "select the batter to score (id, number or name)"},
		{"+ <field> [n]", "add n (default 1) to the batter's counter"},
		{"- <field> [n]", "subtract n (default 1), never below zero"},
		{"set <field> <value>", "set the batter's counter"},
		{"show [player]", "show the batter's stat card"},
		{"table", "team stats table"},
		{"schedule", "upcoming and completed games"},
		{"summary", "team overview"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, e := range rows {
		fmt.Fprint(r.out, "  ")
		cCmd.Fprintf(r.out, "%-24s", e.cmd)
		fmt.Fprintln(r.out, e.desc)
	}
	cMuted.Fprintln(r.out, "  fields: AB H 2B 3B HR BB SO R RBI SB HBP SF")
	fmt.Fprintln(r.out)
}

func (r *repl) roster(filter string) error {
	players, err := r.svc.FilterPlayers(filter)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		cMuted.Fprintln(r.out, "No players.")
		return nil
	}
	report.PrintRoster(r.out, players)
	return nil
}

func (r *repl) use(ref string) error {
	p, err := r.svc.ResolvePlayer(ref)
	if err != nil {
		return err
	}
	r.current = &p
	cHeader.Fprintf(r.out, "scoring %s\n", p.Name)
	return nil
}

func (r *repl) batter() (model.Player, error) {
	if r.current == nil {
		return model.Player{}, fmt.Errorf("no batter selected, run 'use <player>' first")
	}
	return *r.current, nil
}

func (r *repl) adjust(negative bool, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: + <field> [n]")
	}
	p, err := r.batter()
	if err != nil {
		return err
	}
	f, err := parseFieldArg(args[0])
	if err != nil {
		return err
	}
	n := 1
	if len(args) == 2 {
		if n, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid count %q", args[1])
		}
	}
	if negative {
		n = -n
	}
	line, err := r.svc.AdjustStat(p.ID, f, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s %s = %d\n", p.Name, f, line.Get(f))
	return nil
}

func (r *repl) set(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set <field> <value>")
	}
	p, err := r.batter()
	if err != nil {
		return err
	}
	f, err := parseFieldArg(args[0])
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q", args[1])
	}
	line, err := r.svc.SetStat(p.ID, f, v)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s %s = %d\n", p.Name, f, line.Get(f))
	return nil
}

func (r *repl) show(args []string) error {
	var p model.Player
	var err error
	if len(args) > 0 {
		p, err = r.svc.ResolvePlayer(strings.Join(args, " "))
	} else {
		p, err = r.batter()
	}
	if err != nil {
		return err
	}
	ps, err := r.svc.PlayerStats(p.ID)
	if err != nil {
		return err
	}
	report.PrintPlayerStats(r.out, ps)
	return nil
}
