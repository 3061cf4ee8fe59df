package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"

	"github.com/Garsondee/Defender/internal/logger"
	"github.com/Garsondee/Defender/internal/sim"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type runConfig struct {
	kind       sim.MissionKind
	difficulty float64
	loadout    sim.Loadout
	ticks      int
}

type runStats struct {
	runIndex int
	seed     int64

	outcome  *sim.Outcome // nil when the run hit the tick limit
	report   sim.MissionReport
	timedOut bool

	firstKillTick   int
	firstDamageTick int
	firstDeniedTick int
	firstPickupTick int

	killsByKind map[string]int
	deniedBy    map[string]int

	windowSummary *sim.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var mission string
	var difficulty float64
	var weapons string
	var shield string
	var parallel int
	var list bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 7200, "tick limit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&mission, "mission", "attack", "mission kind: attack, defend or comet")
	flag.Float64Var(&difficulty, "difficulty", 1, "difficulty multiplier (> 0)")
	flag.StringVar(&weapons, "weapons", "gun_basic:2,missile_seeker:10", "loadout as id[:count],...")
	flag.StringVar(&shield, "shield", "shield_light", "shield id, or none")
	flag.IntVar(&parallel, "parallel", runtime.NumCPU(), "runs in flight at once")
	flag.BoolVar(&list, "list", false, "print the weapon and shield catalog and exit")
	flag.Parse()

	if list {
		printCatalog(os.Stdout)
		return
	}

	logger.Init()
	log := logger.Log

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	kind, err := sim.ParseMissionKind(mission)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	loadout, err := sim.ParseLoadout(weapons, shield)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	cfg := runConfig{kind: kind, difficulty: difficulty, loadout: loadout, ticks: ticks}

	fmt.Printf("=== Headless Mission Report ===\n")
	fmt.Printf("mission=%s difficulty=%.2f runs=%d ticks=%d seed_base=%d seed_step=%d\n",
		kind, difficulty, runs, ticks, seedBase, seedStep)
	fmt.Printf("loadout=%s shield=%s\n\n", weapons, shield)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	all, err := runAll(ctx, cfg, runs, seedBase, seedStep, parallel, log)
	if err != nil {
		log.WithError(err).Error("headless runs failed")
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(aggregate(all))
}

// printCatalog lists the ids accepted by -weapons and -shield.
func printCatalog(w io.Writer) {
	fmt.Fprintln(w, "weapons:")
	for _, ws := range sim.Weapons() {
		ammo := ""
		if ws.AmmoBased {
			ammo = " ammo"
		}
		fmt.Fprintf(w, "  %-16s %-16s %-8s dmg=%.0f rate=%.1f/s%s\n",
			ws.ID, ws.Name, ws.Category, ws.Damage, ws.FireRate, ammo)
	}
	fmt.Fprintln(w, "shields:")
	for _, sh := range sim.Shields() {
		fmt.Fprintf(w, "  %-16s %-16s cap=%.0f regen=%.0f/s\n", sh.ID, sh.Name, sh.Capacity, sh.RegenRate)
	}
}

// runAll plays every seed concurrently and returns the stats in run order.
func runAll(ctx context.Context, cfg runConfig, runs int, seedBase, seedStep int64, parallel int, log logrus.FieldLogger) ([]runStats, error) {
	all := make([]runStats, runs)
	eg, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		eg.SetLimit(parallel)
	}
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		eg.Go(func() error {
			rs, err := runMission(ctx, cfg, i+1, seed, log)
			if err != nil {
				return fmt.Errorf("run %d (seed=%d): %w", i+1, seed, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// ctxCheckTicks is how often a run polls for cancellation.
const ctxCheckTicks = 600

func runMission(ctx context.Context, cfg runConfig, runIndex int, seed int64, log logrus.FieldLogger) (runStats, error) {
	h, err := sim.NewHarness(cfg.kind, cfg.difficulty, cfg.loadout,
		sim.WithSeed(seed),
		sim.WithLogger(log.WithField("run", runIndex)),
	)
	if err != nil {
		return runStats{}, err
	}

	var out *sim.Outcome
	for t := 0; t < cfg.ticks && out == nil; t++ {
		if t%ctxCheckTicks == 0 {
			if err := ctx.Err(); err != nil {
				return runStats{}, err
			}
		}
		out = h.Step(h.Pilot.Next(h.Sim.Snapshot()))
	}

	sl := h.Sim.SimLog()
	entries := sl.Entries()
	killsByKind := map[string]int{}
	deniedBy := map[string]int{}
	for _, e := range entries {
		switch {
		case e.Category == sim.LogCombat && e.Key == "kill":
			kind, _, _ := strings.Cut(e.Value, " ")
			killsByKind[kind]++
		case e.Category == sim.LogWeapon && e.Key == "denied":
			deniedBy[e.Value]++
		}
	}

	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		outcome:         out,
		report:          h.Sim.Report(),
		timedOut:        out == nil,
		firstKillTick:   firstTick(entries, sim.LogCombat, "kill", ""),
		firstDamageTick: firstTick(entries, sim.LogPlayer, "damage", ""),
		firstDeniedTick: firstTick(entries, sim.LogWeapon, "denied", ""),
		firstPickupTick: firstTick(entries, sim.LogPickup, "collected", ""),
		killsByKind:     killsByKind,
		deniedBy:        deniedBy,
		windowSummary:   h.Reporter.WindowSummary(),
	}, nil
}

func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	if rs.timedOut {
		fmt.Printf("result: still running at tick limit\n")
	} else {
		fmt.Printf("result: %s\n", rs.outcome)
	}
	fmt.Print(rs.report.Format())
	fmt.Printf("phase_markers: first_kill=%d first_damage=%d first_denied=%d first_pickup=%d\n",
		rs.firstKillTick, rs.firstDamageTick, rs.firstDeniedTick, rs.firstPickupTick)
	fmt.Printf("kills_by_kind: %s\n", joinCounts(rs.killsByKind))
	if len(rs.deniedBy) > 0 {
		fmt.Printf("denied_by_weapon: %s\n", joinCounts(rs.deniedBy))
	}
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

type aggregateStats struct {
	runs      int
	successes int
	failures  int
	timeouts  int
	reasons   map[string]int

	avgTicks    float64 // over finished runs
	avgKills    float64
	avgScore    float64
	avgAccuracy float64
	avgTaken    float64
	avgAbsorbed float64
	avgGrade    float64

	firstKillTicks   []int
	firstDamageTicks []int
	killsByKind      map[string]int
}

func aggregate(all []runStats) aggregateStats {
	agg := aggregateStats{
		runs:        len(all),
		reasons:     map[string]int{},
		killsByKind: map[string]int{},
	}
	finishedTicks := 0
	finished := 0
	kills, score := 0, 0
	var accuracy, taken, absorbed, grade float64

	for _, rs := range all {
		switch {
		case rs.timedOut:
			agg.timeouts++
		case rs.outcome.Success:
			agg.successes++
		default:
			agg.failures++
		}
		if rs.outcome != nil {
			agg.reasons[rs.outcome.Reason.String()]++
			finishedTicks += rs.outcome.Tick
			finished++
		}
		kills += rs.report.Kills
		score += rs.report.Score
		accuracy += rs.report.Accuracy()
		taken += rs.report.DamageTaken
		absorbed += rs.report.ShieldAbsorbed
		grade += sim.GradePilot(rs.report).Score
		if rs.firstKillTick >= 0 {
			agg.firstKillTicks = append(agg.firstKillTicks, rs.firstKillTick)
		}
		if rs.firstDamageTick >= 0 {
			agg.firstDamageTicks = append(agg.firstDamageTicks, rs.firstDamageTick)
		}
		for k, n := range rs.killsByKind {
			agg.killsByKind[k] += n
		}
	}

	agg.avgTicks = avg(finishedTicks, finished)
	agg.avgKills = avg(kills, len(all))
	agg.avgScore = avg(score, len(all))
	if len(all) > 0 {
		n := float64(len(all))
		agg.avgAccuracy = accuracy / n
		agg.avgTaken = taken / n
		agg.avgAbsorbed = absorbed / n
		agg.avgGrade = grade / n
	}
	return agg
}

func (a aggregateStats) winRate() float64 {
	if a.runs == 0 {
		return 0
	}
	return float64(a.successes) / float64(a.runs) * 100
}

func printAggregate(a aggregateStats) {
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d success=%d failure=%d timeout=%d win_rate=%.0f%%\n",
		a.runs, a.successes, a.failures, a.timeouts, a.winRate())
	fmt.Printf("end_reasons: %s\n", joinCounts(a.reasons))
	fmt.Printf("avg_per_run: ticks_to_end=%.1f kills=%.1f score=%.0f accuracy=%.2f taken=%.0f absorbed=%.0f\n",
		a.avgTicks, a.avgKills, a.avgScore, a.avgAccuracy, a.avgTaken, a.avgAbsorbed)
	fmt.Printf("avg_grade: %.1f (%s)\n", a.avgGrade, sim.LetterGrade(a.avgGrade))
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s first_damage=%s\n",
		avgTickString(a.firstKillTicks), avgTickString(a.firstDamageTicks))
	fmt.Printf("kills_by_kind: %s\n", joinCounts(a.killsByKind))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// joinCounts renders a count map as "a=1,b=2" in key order.
func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, ",")
}
