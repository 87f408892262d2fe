package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ghduque/indexlab/internal"
	"github.com/ghduque/indexlab/internal/bptree"
	"github.com/ghduque/indexlab/internal/index"
	"github.com/ghduque/indexlab/internal/linearhash"
	"github.com/ghduque/indexlab/internal/oplog"
	"github.com/ghduque/indexlab/internal/record"
)

func main() {
	var (
		cfgPath    = flag.String("config", "", "path to yaml config (optional)")
		engineName = flag.String("engine", "", "index engine: bptree | linearhash")
		numFields  = flag.Int("fields", 0, "integer fields per record")
		pageSize   = flag.Int("page", 0, "bptree page size in bytes")
		totalBytes = flag.Int("bytes", 0, "linearhash total byte budget")
		csvPath    = flag.String("csv", "", "operation log CSV; runs in batch mode when set")
		outPath    = flag.String("out", "", "per-operation results CSV (batch mode only)")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := internal.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := internal.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = *loaded
	}

	// Flags override file values.
	if *engineName != "" {
		cfg.Engine = *engineName
	}
	if *numFields > 0 {
		cfg.NumFields = *numFields
	}
	if *pageSize > 0 {
		cfg.BPTree.PageSize = *pageSize
	}
	if *totalBytes > 0 {
		cfg.LinearHash.TotalBytes = *totalBytes
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	schema := record.Schema{NumFields: cfg.NumFields}

	var eng index.Engine
	switch cfg.Engine {
	case internal.EngineBPTree:
		eng = bptree.New(schema, cfg.BPTree.PageSize)
	case internal.EngineLinearHash:
		eng = linearhash.New(schema, cfg.LinearHash.TotalBytes)
	}

	if *csvPath != "" {
		if err := runBatch(eng, schema, *csvPath, *outPath); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if err := runInteractive(eng, schema); err != nil {
		log.Fatalf("%v", err)
	}
}

func runBatch(eng index.Engine, schema record.Schema, csvPath, outPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open op log: %w", err)
	}
	defer func() { _ = f.Close() }()

	runner := &oplog.Runner{Schema: schema, Engine: eng}
	stats, results, err := runner.Run(f)
	if err != nil {
		return err
	}

	if outPath != "" {
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create results file: %w", err)
		}
		defer func() { _ = out.Close() }()
		if err := oplog.WriteResults(out, results); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}

	fmt.Println(stats.Summary())
	fmt.Printf("stored records: %d\n", eng.Len())
	return nil
}

const menu = `
***********************************
Choose an option:
 --- 1: Insert record
 --- 2: Delete key
 --- 3: Search by equality
 --- 4: Search by range
 --- 5: Dump structure
 --- 6: Quit
***********************************`

func runInteractive(eng index.Engine, schema record.Schema) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "-> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for {
		fmt.Println(menu)
		line, err := prompt(rl, "-> ")
		if err != nil {
			fmt.Println("\nexiting.")
			return nil
		}
		if line == "" {
			continue
		}
		opt, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("invalid option.")
			continue
		}

		switch opt {
		case 1:
			if done := doInsert(rl, eng, schema); done {
				return nil
			}
		case 2:
			key, ok := promptKey(rl, " key (first field) to delete -> ")
			if !ok {
				return nil
			}
			if eng.Remove(key) {
				fmt.Println(" removed.")
			} else {
				fmt.Println(" key not found!")
			}
		case 3:
			key, ok := promptKey(rl, " key to search -> ")
			if !ok {
				return nil
			}
			if rec, found := eng.Search(key); found {
				fmt.Printf(" record found: %v\n", rec)
			} else {
				fmt.Println(" value not found!")
			}
		case 4:
			lo, ok := promptKey(rl, " start key -> ")
			if !ok {
				return nil
			}
			hi, ok := promptKey(rl, " end key -> ")
			if !ok {
				return nil
			}
			recs := eng.RangeScan(lo, hi)
			fmt.Printf(" found %d records in [%d, %d]:\n", len(recs), lo, hi)
			for _, rec := range recs {
				fmt.Printf("  -> %v\n", rec)
			}
		case 5:
			eng.Dump(os.Stdout)
		case 6:
			fmt.Println(" bye.")
			return nil
		default:
			fmt.Println("invalid option.")
		}
	}
}

func doInsert(rl *readline.Instance, eng index.Engine, schema record.Schema) (quit bool) {
	fmt.Printf(" enter %d integer values separated by spaces.\n", schema.NumFields)
	fmt.Println(" example: 10 100 200")
	line, err := prompt(rl, " values -> ")
	if err != nil {
		return true
	}

	fields := strings.Fields(line)
	if len(fields) != schema.NumFields {
		fmt.Printf(" error: expected exactly %d numbers.\n", schema.NumFields)
		return false
	}
	rec := make(record.Record, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			fmt.Println(" error: only integers are accepted.")
			return false
		}
		rec[i] = int32(v)
	}

	if err := eng.Insert(rec); err != nil {
		if errors.Is(err, index.ErrFull) {
			fmt.Println(" error: table is full.")
		} else {
			fmt.Printf(" error: %v\n", err)
		}
		return false
	}
	fmt.Println(" record inserted.")
	return false
}

// promptKey reads one integer key, reprompting on bad input. ok is false on
// EOF or interrupt.
func promptKey(rl *readline.Instance, p string) (int32, bool) {
	for {
		line, err := prompt(rl, p)
		if err != nil {
			return 0, false
		}
		v, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			fmt.Println(" error: key must be an integer.")
			continue
		}
		return int32(v), true
	}
}

func prompt(rl *readline.Instance, p string) (string, error) {
	rl.SetPrompt(p)
	line, err := rl.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
