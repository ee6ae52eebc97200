package salt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/sprintertech/sprinter-omnichain/salt"
)

var (
	SaltCLI = &cobra.Command{
		Use:   "salt",
		Short: "Deterministic deployment salts",
		Long:  "Prints the salts used for cross-chain deployments and, with a deployer and init code hash, the resulting CREATE2 address",
	}
	suckerCMD = &cobra.Command{
		Use:   "sucker",
		Short: "Salt linking project suckers",
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := ParseProjects(projects)
			if err != nil {
				return err
			}
			return printSalt(cmd, func() (common.Hash, error) { return salt.SuckerSalt(links) })
		},
	}
	tokenCMD = &cobra.Command{
		Use:   "token",
		Short: "Salt of a project ERC-20",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSalt(cmd, func() (common.Hash, error) { return salt.TokenSalt(projectID, symbol) })
		},
	}
	revnetCMD = &cobra.Command{
		Use:   "revnet",
		Short: "Salt of a new revnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if timestamp == 0 {
				timestamp = time.Now().Unix()
			}
			return printSalt(cmd, func() (common.Hash, error) { return salt.RevnetSalt(name, timestamp) })
		},
	}
)

var (
	projects     []string
	projectID    uint64
	symbol       string
	name         string
	timestamp    int64
	deployer     string
	initCodeHash string
)

func init() {
	suckerCMD.Flags().StringSliceVar(&projects, "project", nil, "chainId:projectId pair, repeatable")
	_ = suckerCMD.MarkFlagRequired("project")

	tokenCMD.Flags().Uint64Var(&projectID, "project-id", 0, "project id")
	tokenCMD.Flags().StringVar(&symbol, "symbol", "", "token symbol")
	_ = tokenCMD.MarkFlagRequired("project-id")
	_ = tokenCMD.MarkFlagRequired("symbol")

	revnetCMD.Flags().StringVar(&name, "name", "", "revnet name")
	revnetCMD.Flags().Int64Var(&timestamp, "timestamp", 0, "deployment timestamp, defaults to now")
	_ = revnetCMD.MarkFlagRequired("name")

	SaltCLI.PersistentFlags().StringVar(&deployer, "deployer", "", "CREATE2 deployer address")
	SaltCLI.PersistentFlags().StringVar(&initCodeHash, "init-code-hash", "", "keccak256 of the deployed init code")

	SaltCLI.AddCommand(suckerCMD, tokenCMD, revnetCMD)
}

// ParseProjects parses chainId:projectId pairs.
func ParseProjects(pairs []string) ([]salt.ChainProject, error) {
	out := make([]salt.ChainProject, 0, len(pairs))
	for _, pair := range pairs {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid project %s, expected chainId:projectId", pair)
		}
		chainID, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chain id in %s: %w", pair, err)
		}
		id, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid project id in %s: %w", pair, err)
		}
		out = append(out, salt.ChainProject{ChainID: chainID, ProjectID: id})
	}
	return out, nil
}

func printSalt(cmd *cobra.Command, derive func() (common.Hash, error)) error {
	s, err := derive()
	if err != nil {
		return err
	}
	cmd.Printf("salt: %s\n", s.Hex())

	if deployer == "" {
		return nil
	}
	if !common.IsHexAddress(deployer) {
		return fmt.Errorf("invalid deployer address %s", deployer)
	}
	if initCodeHash == "" {
		return fmt.Errorf("init code hash required to compute the address")
	}
	address := salt.Create2Address(common.HexToAddress(deployer), s, common.HexToHash(initCodeHash))
	cmd.Printf("address: %s\n", address.Hex())
	return nil
}
