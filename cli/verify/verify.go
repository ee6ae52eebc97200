package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprintertech/sprinter-omnichain/orchestrator"
	"github.com/sprintertech/sprinter-omnichain/verifier"
)

var (
	VerifyCLI = &cobra.Command{
		Use:   "verify",
		Short: "Verify operation arguments offline",
		Long:  "Reads an intent, or raw pay and cash out arguments, as JSON and prints the verification result without contacting any chain or relay",
		RunE:  verify,
	}
)

var (
	kind   string
	input  string
	chains []uint
)

func init() {
	VerifyCLI.Flags().StringVar(&kind, "kind", "", "operation kind, e.g. deploy-token")
	_ = VerifyCLI.MarkFlagRequired("kind")
	VerifyCLI.Flags().StringVar(&input, "input", "-", "JSON file with the arguments, - for stdin")
	VerifyCLI.Flags().UintSliceVar(&chains, "chains", nil, "supported chain ids")
}

func verify(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return err
	}

	supported := make([]uint64, len(chains))
	for i, c := range chains {
		supported[i] = uint64(c)
	}
	result, err := Verify(verifier.NewVerifier(nil, supported), verifier.Kind(kind), data)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	if !result.IsValid {
		return fmt.Errorf("%d critical doubts", len(result.Criticals()))
	}
	return nil
}

// Verify checks raw arguments of kind with v.
func Verify(v *verifier.Verifier, kind verifier.Kind, data []byte) (*verifier.Result, error) {
	switch kind {
	case verifier.Pay, verifier.CashOut:
		{
			params := verifier.Params{}
			err := json.Unmarshal(data, &params)
			if err != nil {
				return nil, err
			}
			return v.Verify(kind, params), nil
		}
	default:
		{
			intent, err := orchestrator.DecodeIntent(kind, data)
			if err != nil {
				return nil, err
			}
			return orchestrator.NewOrchestrator(v, nil, nil, nil, nil).Verify(intent), nil
		}
	}
}
