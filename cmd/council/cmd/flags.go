package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/collective"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	councilerrors "boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/rpc"
	"boscoin.io/council/lib/storage"
)

const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagStorageConfigString string
	flagLogLevel            string = common.GetENVValue("COUNCIL_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput           string = common.GetENVValue("COUNCIL_LOG_OUTPUT", "")
	flagMotionDuration      string = common.GetENVValue("COUNCIL_MOTION_DURATION", strconv.FormatUint(common.DefaultMotionDuration, 10))
	flagMaxProposals        string = common.GetENVValue("COUNCIL_MAX_PROPOSALS", strconv.FormatUint(uint64(common.DefaultMaxProposals), 10))
	flagHeight              string = common.GetENVValue("COUNCIL_HEIGHT", "0")
	flagKPSecretSeed        string = common.GetENVValue("COUNCIL_SECRET_SEED", "")
	flagRoot                bool   = common.GetENVValue("COUNCIL_ROOT", "0") == "1"
	flagAllow               cmdcommon.ListFlags
	flagFormat              string = common.GetENVValue("COUNCIL_FORMAT", "prettyjson")
)

var (
	log logging.Logger = logging.New("module", "main")

	config        common.Config
	storageConfig *storage.Config
	height        uint64
	filter        action.Filter
	kp            *keypair.Full
	logLevel      logging.Lvl
	encode        cmdcommon.Encode
)

func setPersistentFlags(c *cobra.Command) {
	var err error
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(c, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(c, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("COUNCIL_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	if allow := common.GetENVValue("COUNCIL_ALLOW", ""); len(allow) > 0 {
		flagAllow.Set(allow)
	}

	var flags *pflag.FlagSet = c.PersistentFlags()
	flags.StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri, {file://<path>, memory://}")
	flags.StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	flags.StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	flags.StringVar(&flagMotionDuration, "motion-duration", flagMotionDuration, "number of blocks a proposal stays open")
	flags.StringVar(&flagMaxProposals, "max-proposals", flagMaxProposals, "maximum number of pending proposals of a room")
	flags.StringVar(&flagHeight, "height", flagHeight, "current block height")
	flags.StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed of the caller")
	flags.BoolVar(&flagRoot, "root", flagRoot, "call as root")
	flags.Var(&flagAllow, "allow", "allowed action types; every type is allowed when not given")
	flags.StringVar(&flagFormat, "format", flagFormat, "output format, "+cmdcommon.EncodeNames())
}

func parseFilter(types []string) (action.Filter, error) {
	if len(types) < 1 {
		return action.AllowAll, nil
	}

	var allowed []action.ActionType
	for _, t := range types {
		if !action.IsValidActionType(t) {
			return nil, fmt.Errorf("unknown action type, %q", t)
		}
		allowed = append(allowed, action.ActionType(t))
	}

	return action.AllowTypes(allowed...), nil
}

func parseConfig() (c common.Config, flagName string, err error) {
	c = common.NewConfig()

	if c.MotionDuration, err = common.ParseUint64(flagMotionDuration); err != nil {
		return c, "--motion-duration", err
	}

	var maxProposals uint64
	if maxProposals, err = strconv.ParseUint(flagMaxProposals, 10, 32); err != nil {
		return c, "--max-proposals", err
	}
	c.MaxProposals = uint32(maxProposals)

	if err = c.Validate(); err != nil {
		flagName = "--motion-duration"
		if e, ok := err.(*councilerrors.Error); ok && e.Data["field"] == "MaxProposals" {
			flagName = "--max-proposals"
		}
		return c, flagName, err
	}

	return c, "", nil
}

func newLogHandler() (logging.Handler, error) {
	if len(flagLogOutput) > 0 {
		return logging.FileHandler(flagLogOutput, logging.JsonFormat())
	}

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = common.JsonFormatEx(false, true)
	}

	return logging.StreamHandler(os.Stderr, formatter), nil
}

// parseFlagsCommon parses the persistent flags. It returns the name of the
// wrong flag with the error.
func parseFlagsCommon() (string, error) {
	var err error

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		return "--storage", err
	}

	var flagName string
	if config, flagName, err = parseConfig(); err != nil {
		return flagName, err
	}

	if height, err = common.ParseUint64(flagHeight); err != nil {
		return "--height", err
	}

	if filter, err = parseFilter(flagAllow); err != nil {
		return "--allow", err
	}

	kp = nil
	if len(flagKPSecretSeed) > 0 {
		var ok bool
		if kp, ok = keypair.ParseSeed(flagKPSecretSeed); !ok {
			return "--secret-seed", errors.New("not a secret seed")
		}
	}

	var ok bool
	if encode, ok = cmdcommon.DefaultEncodes[flagFormat]; !ok {
		return "--format", fmt.Errorf("%q not recognized", flagFormat)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		return "--log-level", err
	}

	var logHandler logging.Handler
	if logHandler, err = newLogHandler(); err != nil {
		return "--log-output", err
	}

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	common.SetLogging(logLevel, logHandler)
	storage.SetLogging(logLevel, logHandler)
	action.SetLogging(logLevel, logHandler)
	collective.SetLogging(logLevel, logHandler)
	rpc.SetLogging(logLevel, logHandler)

	log.Debug(
		"parsed flags:",
		"\n\tstorage", flagStorageConfigString,
		"\n\tlog-level", flagLogLevel,
		"\n\tlog-output", flagLogOutput,
		"\n\tmotion-duration", config.MotionDuration,
		"\n\tmax-proposals", config.MaxProposals,
		"\n\theight", height,
		"\n\troot", flagRoot,
		"\n\tallow", flagAllow.String(),
		"\n\tformat", flagFormat,
	)

	return "", nil
}

// parseFlags parses the persistent flags, or prints the error and exits.
func parseFlags(c *cobra.Command) {
	if flagName, err := parseFlagsCommon(); err != nil {
		cmdcommon.PrintFlagsError(c, flagName, err)
	}
}

// caller returns the caller of the flags; root with `--root`, otherwise the
// signer of `--secret-seed`.
func caller() (collective.Caller, error) {
	if flagRoot {
		return collective.RootCaller(), nil
	}
	if kp == nil {
		return collective.Caller{}, errors.New("--secret-seed must be given")
	}

	return collective.SignedCaller(kp.Address()), nil
}

// signer returns the address of `--secret-seed`; the signed calls can not be
// called by root.
func signer() (string, error) {
	if kp == nil {
		return "", errors.New("--secret-seed must be given")
	}

	return kp.Address(), nil
}
