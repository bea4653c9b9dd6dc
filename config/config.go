package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/daedaleanai/cbuild/log"
	"github.com/daedaleanai/cbuild/util"
)

// Settings is everything a build or clean operation needs to know. It is
// resolved once by the command line layer and passed down explicitly.
type Settings struct {
	SourceRoot string            `yaml:"-"`
	BuildDir   string            `yaml:"build_dir"`
	CMake      string            `yaml:"cmake"`
	Generator  string            `yaml:"generator"`
	BuildType  string            `yaml:"build_type"`
	Defines    map[string]string `yaml:"defines"`
	Jobs       int               `yaml:"jobs"`
	Target     string            `yaml:"target"`
}

const configFileName string = "config.yaml"
const envPrefix = "CBUILD"

const (
	buildDirKey  = "build_dir"
	cmakeKey     = "cmake"
	generatorKey = "generator"
	buildTypeKey = "build_type"
	jobsKey      = "jobs"
	targetKey    = "target"
)

// Flag names as they appear on the command line.
const (
	BuildDirFlag  = "build-dir"
	CMakeFlag     = "cmake"
	GeneratorFlag = "generator"
	BuildTypeFlag = "build-type"
	DefineFlag    = "define"
	JobsFlag      = "jobs"
	TargetFlag    = "target"
)

var flagForKey = map[string]string{
	buildDirKey:  BuildDirFlag,
	cmakeKey:     CMakeFlag,
	generatorKey: GeneratorFlag,
	buildTypeKey: BuildTypeFlag,
	jobsKey:      JobsFlag,
	targetKey:    TargetFlag,
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		SourceRoot: util.DefaultSourceRoot,
		BuildDir:   util.DefaultBuildDirName,
		CMake:      "cmake",
		Defines:    map[string]string{},
	}
}

// AddBuildDirFlag registers the flag selecting the build directory.
func AddBuildDirFlag(flags *pflag.FlagSet) {
	flags.String(BuildDirFlag, util.DefaultBuildDirName, "Build directory, relative to the working directory")
}

// AddToolFlags registers the flags that are forwarded to CMake.
func AddToolFlags(flags *pflag.FlagSet) {
	flags.String(CMakeFlag, "cmake", "CMake executable")
	flags.StringP(GeneratorFlag, "G", "", "CMake generator (e.g. 'Ninja')")
	flags.String(BuildTypeFlag, "", "Value of CMAKE_BUILD_TYPE")
	flags.StringToStringP(DefineFlag, "D", nil, "CMake cache entry KEY=VALUE (repeatable)")
	flags.IntP(JobsFlag, "j", 0, "Number of parallel build jobs (0 lets the build tool decide)")
	flags.StringP(TargetFlag, "t", "", "Build only this target")
}

// Dir returns the directory holding the user configuration file.
func Dir() (string, error) {
	if configDir, ok := os.LookupEnv("CBUILD_CONFIG_DIR"); ok && configDir != "" {
		return configDir, nil
	}

	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgConfigHome != "" {
		return path.Join(xdgConfigHome, "cbuild"), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("unable to locate the configuration directory: %w", err)
	}
	return path.Join(homeDir, ".config", "cbuild"), nil
}

// FilePath returns the path of the configuration file inside configDir.
func FilePath(configDir string) string {
	return path.Join(configDir, configFileName)
}

// ReadFile reads settings from a YAML file on top of the defaults.
func ReadFile(filePath string) (Settings, error) {
	settings := Default()
	data, err := os.ReadFile(filePath)
	if err != nil {
		return settings, err
	}
	if err := yaml.UnmarshalStrict(data, &settings); err != nil {
		return Default(), fmt.Errorf("parsing '%s': %w", filePath, err)
	}
	if settings.Defines == nil {
		settings.Defines = map[string]string{}
	}
	return settings, nil
}

func loadFile() Settings {
	configDir, err := Dir()
	if err != nil {
		log.Debug("Unable to find cbuild config directory. Using default configuration.\n")
		return Default()
	}

	configFilePath := FilePath(configDir)
	settings, err := ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("No configuration file at '%s'. Using default configuration.\n", configFilePath)
		} else {
			log.Warning("Error reading configuration file: %s. Using default configuration.\n", err)
		}
		return Default()
	}

	log.Debug("Loaded configuration from '%s'.\n", configFilePath)
	return settings
}

// Load resolves the settings. Later sources take precedence: defaults, the
// user configuration file, CBUILD_* environment variables and finally the
// flags that were set explicitly on the command line.
func Load(flags *pflag.FlagSet) (Settings, error) {
	return resolve(loadFile(), flags)
}

// LoadBuildDir resolves only the build directory, with the same precedence
// as Load. Invalid values of the other settings do not matter here.
func LoadBuildDir(flags *pflag.FlagSet) (string, error) {
	return resolveBuildDir(loadFile(), flags)
}

func resolveBuildDir(base Settings, flags *pflag.FlagSet) (string, error) {
	v, err := newViper(base, flags)
	if err != nil {
		return "", err
	}
	buildDir := v.GetString(buildDirKey)
	if buildDir == "" {
		return "", fmt.Errorf("the build directory must not be empty")
	}
	return buildDir, nil
}

// newViper layers CBUILD_* environment variables and explicitly set flags
// over base.
func newViper(base Settings, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(buildDirKey, base.BuildDir)
	v.SetDefault(cmakeKey, base.CMake)
	v.SetDefault(generatorKey, base.Generator)
	v.SetDefault(buildTypeKey, base.BuildType)
	v.SetDefault(jobsKey, base.Jobs)
	v.SetDefault(targetKey, base.Target)

	if flags == nil {
		return v, nil
	}
	for key, name := range flagForKey {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func resolve(base Settings, flags *pflag.FlagSet) (Settings, error) {
	v, err := newViper(base, flags)
	if err != nil {
		return Settings{}, err
	}

	jobs, err := strconv.Atoi(strings.TrimSpace(v.GetString(jobsKey)))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid value for '%s': %w", jobsKey, err)
	}

	settings := Settings{
		SourceRoot: base.SourceRoot,
		BuildDir:   v.GetString(buildDirKey),
		CMake:      v.GetString(cmakeKey),
		Generator:  v.GetString(generatorKey),
		BuildType:  v.GetString(buildTypeKey),
		Defines:    map[string]string{},
		Jobs:       jobs,
		Target:     v.GetString(targetKey),
	}
	for key, value := range base.Defines {
		settings.Defines[key] = value
	}
	if flags != nil && flags.Lookup(DefineFlag) != nil {
		defines, err := flags.GetStringToString(DefineFlag)
		if err != nil {
			return Settings{}, err
		}
		for key, value := range defines {
			settings.Defines[key] = value
		}
	}

	if settings.SourceRoot == "" {
		settings.SourceRoot = util.DefaultSourceRoot
	}
	return settings, settings.Validate()
}

// Validate checks that the settings can be used to run a build.
func (s Settings) Validate() error {
	if s.BuildDir == "" {
		return fmt.Errorf("the build directory must not be empty")
	}
	if s.CMake == "" {
		return fmt.Errorf("the CMake executable must not be empty")
	}
	if s.Jobs < 0 {
		return fmt.Errorf("the number of jobs must not be negative, got %d", s.Jobs)
	}
	return nil
}

// Values returns the settings as flat key/value pairs, keyed by their
// configuration file names.
func (s Settings) Values() map[string]string {
	values := map[string]string{
		buildDirKey:  s.BuildDir,
		cmakeKey:     s.CMake,
		generatorKey: s.Generator,
		buildTypeKey: s.BuildType,
		jobsKey:      strconv.Itoa(s.Jobs),
		targetKey:    s.Target,
	}
	for key, value := range s.Defines {
		values["defines."+key] = value
	}
	return values
}
