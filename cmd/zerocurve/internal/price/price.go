package price

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/zerocurve/bond"
	"github.com/meenmo/zerocurve/cmd/zerocurve/internal/cli"
)

// Output is one priced zero-coupon bond.
type Output struct {
	FaceValue      float64 `json:"face_value"`
	Rate           float64 `json:"rate"`
	Years          float64 `json:"years"`
	Frequency      int     `json:"frequency"`
	PresentValue   float64 `json:"present_value"`
	DiscountFactor float64 `json:"discount_factor"`
	Error          string  `json:"error,omitempty"`
}

type options struct {
	input     string
	face      float64
	rate      float64
	years     float64
	frequency int
	format    string
}

// NewCommand returns the price subcommand.
func NewCommand(env *cli.Env) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a zero-coupon bond at a flat periodic rate",
		Long: `Price a zero-coupon bond: PV = F / (1 + r/m)^(T*m).

Parameters come from flags, or from JSON (--input path, "-" for stdin) holding
one object or an array of {"face_value","rate","years","frequency"}.`,
		Example: `  zerocurve price --face 1000 --rate 0.05 --years 2
  echo '[{"face_value":100,"rate":0.04,"years":1.5,"frequency":2}]' | zerocurve price --input -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.input != "" {
				if opts.format != "json" {
					return fmt.Errorf("--format %s cannot be combined with --input (JSON input is answered in JSON)", opts.format)
				}
				return runJSON(env, opts.input)
			}
			if !cmd.Flags().Changed("rate") || !cmd.Flags().Changed("years") {
				return fmt.Errorf("--rate and --years are required without --input")
			}
			return runFlags(env, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.input, "input", "", `JSON input path ("-" reads stdin)`)
	fs.Float64Var(&opts.face, "face", 100, "face value")
	fs.Float64Var(&opts.rate, "rate", 0, "annual rate as a decimal (0.05 = 5%)")
	fs.Float64Var(&opts.years, "years", 0, "years to maturity")
	fs.IntVar(&opts.frequency, "freq", 1, "compounding periods per year")
	fs.StringVar(&opts.format, "format", "json", "output format: json or text")
	return cmd
}

func runFlags(env *cli.Env, opts options) error {
	out, err := process(bond.PriceInput{
		FaceValue: opts.face,
		Rate:      opts.rate,
		Years:     opts.years,
		Frequency: opts.frequency,
	})
	if err != nil {
		return cli.Fail(err)
	}
	env.Logger.WithField("present_value", out.PresentValue).Debug("zero-coupon bond priced")

	switch opts.format {
	case "text":
		_, err := fmt.Fprintf(env.Stdout, "ZCB Value: $%.2f\n", out.PresentValue)
		return err
	case "json", "":
		return env.WriteJSON(out)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func runJSON(env *cli.Env, path string) error {
	raw, err := env.ReadInput(path)
	if err != nil {
		return cli.Failf("read input: %v", err)
	}
	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		return cli.Failf("parse JSON: %v", err)
	}

	var failed error
	outputs := make([]Output, 0, len(inputs))
	for i, in := range inputs {
		out, err := process(in)
		if err != nil {
			env.Logger.WithError(err).WithField("index", i).Warn("price failed")
			failed = err
			outputs = append(outputs, Output{Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	var werr error
	if isArray {
		werr = env.WriteJSON(outputs)
	} else {
		werr = env.WriteJSON(outputs[0])
	}
	if werr != nil {
		return werr
	}
	if failed != nil {
		return &cli.Failure{Err: failed, Reported: true}
	}
	return nil
}

func process(in bond.PriceInput) (*Output, error) {
	res, err := bond.PriceZeroCoupon(in)
	if err != nil {
		return nil, err
	}
	freq := in.Frequency
	if freq == 0 {
		freq = 1
	}
	return &Output{
		FaceValue:      in.FaceValue,
		Rate:           in.Rate,
		Years:          in.Years,
		Frequency:      freq,
		PresentValue:   res.PresentValue,
		DiscountFactor: res.DiscountFactor,
	}, nil
}

func parseInputs(raw []byte) ([]bond.PriceInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []bond.PriceInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input bond.PriceInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []bond.PriceInput{input}, false, nil
}
