// Command oscsend sends OSC messages from the command line.
//
//	oscsend [-to host:port] [-count n] [-rate n] [-bundle] PATH TYPE VALUE
//
// TYPE is one of int, float, bool, string. With -bundle the repetitions are
// packed into a single bundle and sent chunked; otherwise each repetition is
// its own datagram.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/oscwire/oscwire/internal/config"
	"github.com/oscwire/oscwire/osc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var (
		to      = flag.String("to", cfg.TargetAddr, "Target address (host:port)")
		count   = flag.Int("count", 1, "Number of repetitions to send")
		msgRate = flag.Float64("rate", 0, "Messages per second (0 = unpaced)")
		bundle  = flag.Bool("bundle", false, "Pack the repetitions into one bundle")
	)
	flag.Parse()

	if flag.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Usage: oscsend [-to host:port] [-count n] [-rate n] [-bundle] PATH TYPE VALUE")
		fmt.Fprintln(os.Stderr, "       TYPE is one of: int, float, bool, string")
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	osc.SetLogger(logger)

	if err := run(*to, *count, *msgRate, *bundle, flag.Arg(0), flag.Arg(1), flag.Arg(2)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(to string, count int, msgRate float64, bundle bool, path, typ, value string) error {
	v, err := parseValue(typ, value)
	if err != nil {
		return err
	}
	msg := osc.NewMessage(path, v)

	client, err := osc.Dial(to)
	if err != nil {
		return fmt.Errorf("dial %s: %w", to, err)
	}
	defer client.Close()

	if msgRate > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(msgRate), 1)
	}

	if bundle {
		b := osc.NewBundle()
		for i := 0; i < count; i++ {
			b.Append(msg)
		}
		sent, err := client.SendBundleChunked(b)
		if err != nil {
			return fmt.Errorf("send bundle: %w", err)
		}
		fmt.Printf("Sent %d message(s) in %d datagram(s) to %s\n", count, sent, to)
		return nil
	}

	for i := 0; i < count; i++ {
		if err := client.Send(msg); err != nil {
			return fmt.Errorf("send %d/%d: %w", i+1, count, err)
		}
	}
	fmt.Printf("Sent %d message(s) to %s\n", count, to)
	return nil
}

func parseValue(typ, value string) (osc.Value, error) {
	switch typ {
	case "int":
		i, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse int %q: %w", value, err)
		}
		return osc.Int32(i), nil

	case "float":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("parse float %q: %w", value, err)
		}
		return osc.Float32(f), nil

	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse bool %q: %w", value, err)
		}
		return osc.Bool(b), nil

	case "string":
		return osc.String(value), nil

	default:
		return nil, fmt.Errorf("unknown type %q (want int, float, bool, or string)", typ)
	}
}
