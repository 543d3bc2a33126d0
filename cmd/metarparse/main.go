// Command metarparse is a batch CLI: it reads raw METAR/TAF report
// lines (plain text, flat JSON, or NATS envelope JSON -- autodetected
// per line) and emits the parsed result as JSON.
//
// Input formats
// -------------
// The ingestion daemon (cmd/metar-ingest) expects the same three
// shapes this tool autodetects:
//  1. NATS feed wrapper: {"source":{...},"message":{"raw_text":"...",...}}
//  2. Flat message:      {"station":"KJFK","raw_text":"...", ...}
//  3. Plain text:        one raw METAR/TAF string per line.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"metartaf/internal/extractor"
	"metartaf/internal/report"
)

// ParseOut is one line's parsed result.
type ParseOut struct {
	Station    string            `json:"station,omitempty"`
	RawText    string            `json:"raw_text"`
	ReportType string            `json:"report_type"`
	Error      string            `json:"error,omitempty"`
	Groups     []report.GroupResult `json:"groups"`
}

type stats struct {
	Lines    int
	Skipped  int
	Emitted  int
	WithErr  int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "metarparse - commands:")
	fmt.Fprintln(w, "  parse  - parse a file of reports (one per line) and output JSON")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  metarparse parse -input reports.txt [-output out.json] [-pretty] [-extended] [-stats]")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	switch strings.ToLower(os.Args[1]) {
	case "parse":
		runParse(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	inPath := fs.String("input", "", "Input file, one report per line (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	extended := fs.Bool("extended", false, "Use ExtendedParse to include dispatch traces")
	showStats := fs.Bool("stats", false, "Print basic counters to stderr")
	_ = fs.Parse(args)

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 16*1024*1024)

	out := make([]ParseOut, 0, 256)
	st := &stats{}

	for scanner.Scan() {
		st.Lines++
		decoded, ok := extractor.DecodeLine(scanner.Text())
		if !ok {
			st.Skipped++
			continue
		}

		var result report.Result
		if *extended {
			result = report.ExtendedParse(decoded.RawText)
		} else {
			result = report.Parse(decoded.RawText)
		}

		po := ParseOut{
			Station:    decoded.Station,
			RawText:    decoded.RawText,
			ReportType: reportTypeName(result.ReportType),
			Groups:     result.Groups,
		}
		if result.Error != report.ErrNone {
			po.Error = result.Error.String()
			st.WithErr++
		}
		out = append(out, po)
		st.Emitted++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "input read error: %v\n", err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc, err := marshalJSON(out, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
		os.Exit(1)
	}
	_, _ = w.Write(enc)
	if w == os.Stdout {
		_, _ = w.Write([]byte("\n"))
	}

	if *showStats {
		fmt.Fprintf(os.Stderr, "stats: lines=%d emitted=%d skipped=%d with_error=%d\n",
			st.Lines, st.Emitted, st.Skipped, st.WithErr)
	}
}

func reportTypeName(rt report.ReportType) string {
	switch rt {
	case report.ReportMetar:
		return "metar"
	case report.ReportTaf:
		return "taf"
	default:
		return "unknown"
	}
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
