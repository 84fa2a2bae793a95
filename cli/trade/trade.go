// Package trade contains marketplace CLI commands.
package trade

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/tokenmart/pkg/config"
	"github.com/nspcc-dev/tokenmart/pkg/encoding/address"
	"github.com/nspcc-dev/tokenmart/pkg/market"
	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var configFlag = cli.StringFlag{
	Name:  "config, c",
	Usage: "Path to the marketplace yaml config",
	Value: "config/tokenmart.yml",
}

var callerFlag = cli.StringFlag{
	Name:  "caller",
	Usage: "Address the operation is performed as",
}

// NewCommands returns marketplace commands.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:  "collection",
			Usage: "operate on collections",
			Subcommands: []cli.Command{
				{
					Name:      "create",
					Usage:     "create and register a new collection (service role)",
					UsageText: "tokenmart collection create --caller <addr> --name <name> --payout <addr> --token id:amount:price [--token ...]",
					Action:    createCollection,
					Flags: []cli.Flag{
						configFlag,
						callerFlag,
						cli.StringFlag{
							Name:  "name",
							Usage: "Collection name",
						},
						cli.StringFlag{
							Name:  "metadata",
							Usage: "Collection metadata URI",
						},
						cli.StringFlag{
							Name:  "payout",
							Usage: "Seller payout address",
						},
						cli.StringSliceFlag{
							Name:  "token",
							Usage: "Token lot in id:amount:price form, repeatable",
						},
					},
				},
				{
					Name:   "list",
					Usage:  "list registered collections",
					Action: listCollections,
					Flags:  []cli.Flag{configFlag},
				},
			},
		},
		{
			Name:  "price",
			Usage: "price table operations",
			Subcommands: []cli.Command{
				{
					Name:      "get",
					Usage:     "get the unit price of a token",
					UsageText: "tokenmart price get <collection> <tokenID>",
					Action:    getPrice,
					Flags:     []cli.Flag{configFlag},
				},
				{
					Name:      "set",
					Usage:     "re-price a token (service role)",
					UsageText: "tokenmart price set --caller <addr> <collection> <tokenID> <price>",
					Action:    setPrice,
					Flags:     []cli.Flag{configFlag, callerFlag},
				},
			},
		},
		{
			Name:      "purchase",
			Usage:     "buy tokens from a registered collection",
			UsageText: "tokenmart purchase --caller <buyer> <collection> <tokenID> <amount> <paid>",
			Action:    purchase,
			Flags:     []cli.Flag{configFlag, callerFlag},
		},
		{
			Name:      "deposit",
			Usage:     "credit an account with native currency",
			UsageText: "tokenmart deposit <account> <amount>",
			Action:    deposit,
			Flags:     []cli.Flag{configFlag},
		},
		{
			Name:      "balance",
			Usage:     "show the native currency balance of an account and, optionally, its token balance",
			UsageText: "tokenmart balance <account> [<collection> <tokenID>]",
			Action:    balance,
			Flags:     []cli.Flag{configFlag},
		},
		{
			Name:      "service",
			Usage:     "rotate the service role (owner only)",
			UsageText: "tokenmart service --caller <owner> <newService>",
			Action:    setService,
			Flags:     []cli.Flag{configFlag, callerFlag},
		},
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}
	cc := zap.NewProductionConfig()
	cc.Level = zap.NewAtomicLevelAt(lvl)
	return cc.Build()
}

// openMarketplace loads the config named by the --config flag and opens
// the marketplace on top of its storage backend. The caller is
// responsible for closing it.
func openMarketplace(ctx *cli.Context) (*market.Marketplace, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.ApplicationConfiguration.LogLevel)
	if err != nil {
		return nil, err
	}
	st, err := storage.NewStore(cfg.ApplicationConfiguration.DBConfiguration)
	if err != nil {
		return nil, err
	}
	return market.New(st, cfg.MarketConfiguration, log)
}

func getCaller(ctx *cli.Context) (util.Uint160, error) {
	s := ctx.String("caller")
	if s == "" {
		return util.Uint160{}, fmt.Errorf("missing --caller flag")
	}
	return address.StringToUint160(s)
}

// parseLot parses a token lot given as "id:amount:price".
func parseLot(s string) (tokenID, amount uint64, price *uint256.Int, err error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return 0, 0, nil, fmt.Errorf("token %q is not in id:amount:price form", s)
	}
	if tokenID, err = strconv.ParseUint(parts[0], 10, 64); err != nil {
		return 0, 0, nil, fmt.Errorf("bad token id %q: %w", parts[0], err)
	}
	if amount, err = strconv.ParseUint(parts[1], 10, 64); err != nil {
		return 0, 0, nil, fmt.Errorf("bad token amount %q: %w", parts[1], err)
	}
	if price, err = uint256.FromDecimal(parts[2]); err != nil {
		return 0, 0, nil, fmt.Errorf("bad token price %q: %w", parts[2], err)
	}
	return
}

func createCollection(ctx *cli.Context) error {
	caller, err := getCaller(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	payout, err := address.StringToUint160(ctx.String("payout"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("bad payout address: %w", err), 1)
	}
	var (
		tokenIDs []uint64
		amounts  []uint64
		prices   []*uint256.Int
	)
	for _, lot := range ctx.StringSlice("token") {
		tokenID, amount, price, err := parseLot(lot)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		tokenIDs = append(tokenIDs, tokenID)
		amounts = append(amounts, amount)
		prices = append(prices, price)
	}
	m, err := openMarketplace(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()
	col, err := m.CreateCollection(caller, ctx.String("name"), ctx.String("metadata"),
		tokenIDs, amounts, prices, payout)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, address.Uint160ToString(col))
	return nil
}

func listCollections(ctx *cli.Context) error {
	m, err := openMarketplace(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()
	cols, err := m.Collections()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	tw := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 4, '\t', 0)
	for _, c := range cols {
		_, _ = tw.Write([]byte(address.Uint160ToString(c.Address) + "\t" + c.Name + "\t" + c.MetadataURI + "\n"))
	}
	return tw.Flush()
}

// colAndToken parses the leading <collection> <tokenID> positional args.
func colAndToken(args []string) (util.Uint160, uint64, error) {
	if len(args) < 2 {
		return util.Uint160{}, 0, fmt.Errorf("collection address and token id are required")
	}
	col, err := address.StringToUint160(args[0])
	if err != nil {
		return util.Uint160{}, 0, fmt.Errorf("bad collection address: %w", err)
	}
	tokenID, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return util.Uint160{}, 0, fmt.Errorf("bad token id: %w", err)
	}
	return col, tokenID, nil
}

func getPrice(ctx *cli.Context) error {
	col, tokenID, err := colAndToken(ctx.Args())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	m, err := openMarketplace(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()
	fmt.Fprintln(ctx.App.Writer, m.GetPrice(col, tokenID).Dec())
	return nil
}

func setPrice(ctx *cli.Context) error {
	caller, err := getCaller(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	args := ctx.Args()
	col, tokenID, err := colAndToken(args)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if len(args) < 3 {
		return cli.NewExitError("price is required", 1)
	}
	price, err := uint256.FromDecimal(args[2])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("bad price: %w", err), 1)
	}
	m, err := openMarketplace(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()
	if err := m.SetPrice(caller, col, tokenID, price); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func purchase(ctx *cli.Context) error {
	buyer, err := getCaller(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	args := ctx.Args()
	col, tokenID, err := colAndToken(args)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if len(args) < 4 {
		return cli.NewExitError("amount and payment are required", 1)
	}
	amount, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("bad amount: %w", err), 1)
	}
	paid, err := uint256.FromDecimal(args[3])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("bad payment: %w", err), 1)
	}
	m, err := openMarketplace(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()
	if err := m.Purchase(buyer, col, tokenID, amount, paid); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func deposit(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) < 2 {
		return cli.NewExitError("account and amount are required", 1)
	}
	acc, err := address.StringToUint160(args[0])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("bad account: %w", err), 1)
	}
	amount, err := uint256.FromDecimal(args[1])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("bad amount: %w", err), 1)
	}
	m, err := openMarketplace(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()
	if err := m.Deposit(acc, amount); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func balance(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) < 1 {
		return cli.NewExitError("account is required", 1)
	}
	acc, err := address.StringToUint160(args[0])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("bad account: %w", err), 1)
	}
	m, err := openMarketplace(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()
	fmt.Fprintln(ctx.App.Writer, m.AccountBalance(acc).Dec())
	if len(args) >= 3 {
		col, tokenID, err := colAndToken(args[1:])
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintln(ctx.App.Writer, m.TokenBalance(col, tokenID, acc))
	}
	return nil
}

func setService(ctx *cli.Context) error {
	caller, err := getCaller(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	args := ctx.Args()
	if len(args) < 1 {
		return cli.NewExitError("new service address is required", 1)
	}
	service, err := address.StringToUint160(args[0])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("bad service address: %w", err), 1)
	}
	m, err := openMarketplace(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()
	if err := m.SetServiceAddress(caller, service); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}
