package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/lance6716/percolation-estimator/pkg/perc"
	"github.com/lance6716/percolation-estimator/pkg/percolation"
	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "percolation",
		Short:         "A tool used to estimate the percolation threshold of n x n grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return perc.InitLogger(&perc.Log{Level: logLevel, Filename: logFile})
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check <file> [row col]",
		Short: "Replay the sites of a file and report whether the system percolates",
		Long: "The file holds whitespace separated integers: the grid size n followed by\n" +
			"(row, col) pairs of sites to open. With row and col, also report whether\n" +
			"that site is full.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return errors.Errorf("accepts 1 or 3 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args)
		},
	}

	estimateCmd = &cobra.Command{
		Use:   "estimate <n> <trials>",
		Short: "Estimate the percolation threshold by Monte-Carlo trials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePositional("n", args[0])
			if err != nil {
				return err
			}
			trials, err := parsePositional("trials", args[1])
			if err != nil {
				return err
			}
			cfg := newConfig()
			cfg.GridSize = n
			cfg.Trials = trials
			e, err := perc.Run(cmd.Context(), cfg)
			if err != nil {
				return errors.Trace(err)
			}
			printSummary(cmd.OutOrStdout(), e)
			return nil
		},
	}

	showCmd = &cobra.Command{
		Use:   "show <task>",
		Short: "Print the summary of a finished task from the result database or the work directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := perc.Show(cmd.Context(), newConfig(), args[0])
			if err != nil {
				return errors.Trace(err)
			}
			printSummary(cmd.OutOrStdout(), e)
			return nil
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the finished tasks of the result database or the work directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := perc.ListTasks(cmd.Context(), newConfig())
			if err != nil {
				return errors.Trace(err)
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
)

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

var (
	workDir     string
	logLevel    string
	logFile     string
	dbHost      string
	dbPort      int
	dbUser      string
	dbPassword  string
	dbName      string
	taskName    string
	workers     int
	seed        int64
	impl        string
	writeReport bool
)

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVarP(&workDir, "work-dir", "w", "", "work directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file, log to stderr if empty")
	rootCmd.PersistentFlags().StringVar(&dbHost, "mysql-host", "", "result database host, trials are not saved to a database if empty")
	rootCmd.PersistentFlags().IntVar(&dbPort, "mysql-port", 4000, "result database port")
	rootCmd.PersistentFlags().StringVar(&dbUser, "mysql-user", "root", "result database user")
	rootCmd.PersistentFlags().StringVar(&dbPassword, "mysql-password", "", "result database password")
	rootCmd.PersistentFlags().StringVar(&dbName, "mysql-db", "percolation", "result database name")

	estimateCmd.Flags().StringVar(&taskName, "task", "", "task name, current time if empty")
	estimateCmd.Flags().IntVar(&workers, "workers", 0, "trials run concurrently, GOMAXPROCS if 0")
	estimateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed, current time if 0")
	estimateCmd.Flags().StringVar(&impl, "impl", string(percolation.ImplUnionFind), "model implementation: uf or bruteforce")
	estimateCmd.Flags().BoolVar(&writeReport, "report", false, "render an HTML report under the work directory")

	checkCmd.Flags().StringVar(&impl, "impl", string(percolation.ImplUnionFind), "model implementation: uf or bruteforce")

	rootCmd.AddCommand(checkCmd, estimateCmd, showCmd, listCmd)
}

func newConfig() *perc.Config {
	return &perc.Config{
		TaskName: taskName,
		Workers:  workers,
		Seed:     seed,
		Impl:     percolation.Impl(impl),
		WorkDir:  workDir,
		Report:   writeReport,
		ResultDB: perc.MySQL{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
		},
		Log: perc.Log{
			Level:    logLevel,
			Filename: logFile,
		},
	}
}

func parsePositional(name, arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Annotatef(err, "parse %s", name)
	}
	return v, nil
}

func runCheck(w io.Writer, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()

	m, err := perc.Replay(f, percolation.Impl(impl))
	if err != nil {
		return errors.Annotatef(err, "replay %s", args[0])
	}
	n := m.Size()
	fmt.Fprintf(w, "%d x %d system:\n", n, n)
	fmt.Fprintf(w, "  Open sites = %d\n", m.NumberOfOpenSites())
	fmt.Fprintf(w, "  Percolates = %t\n", m.Percolates())
	if len(args) == 3 {
		row, err := parsePositional("row", args[1])
		if err != nil {
			return err
		}
		col, err := parsePositional("col", args[2])
		if err != nil {
			return err
		}
		full, err := m.IsFull(row, col)
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Fprintf(w, "  isFull(%d, %d) = %t\n", row, col, full)
	}
	return nil
}

func printSummary(w io.Writer, e *stats.Estimator) {
	n := e.GridSize()
	fmt.Fprintf(w, "Percolation threshold for a %d x %d system:\n", n, n)
	fmt.Fprintf(w, "  Mean                = %.3f\n", e.Mean())
	fmt.Fprintf(w, "  Standard deviation  = %.3f\n", e.Stddev())
	fmt.Fprintf(w, "  Confidence interval = [%.3f, %.3f]\n", e.ConfidenceLow(), e.ConfidenceHigh())
}

func printTasks(w io.Writer, tasks map[string]int) {
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%d trials\n", name, tasks[name])
	}
}
