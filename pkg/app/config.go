package app

import (
	"flag"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/matheo-lm/xs-arcade/pkg/config"
)

// Config 定义应用启动配置
//
// 先从环境变量读取，再由命令行参数覆盖
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool `env:"XS_ARCADE_VERBOSE" envDefault:"false"`
	// AgeBand 覆盖设置中的年龄段（"4-5"、"6-7"、"8"），为空时使用设置
	AgeBand string `env:"XS_ARCADE_AGE_BAND"`
	// Seed 随机种子，0 表示使用时间种子
	Seed int64 `env:"XS_ARCADE_SEED" envDefault:"0"`
	// Muted 启动时静音（写入设置）
	Muted bool `env:"XS_ARCADE_MUTED" envDefault:"false"`
	// Game 启动的小游戏ID
	Game string `env:"XS_ARCADE_GAME" envDefault:"fruit-stacker"`
}

// ParseEnv 从环境变量读取配置
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseConfig 读取环境变量后解析命令行参数
//
// 参数：
//   - name: 程序名（用于帮助信息）
//   - args: 命令行参数（不含程序名）
func ParseConfig(name string, args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.StringVar(&cfg.AgeBand, "age", cfg.AgeBand, "age band difficulty: 4-5, 6-7 or 8")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	fs.BoolVar(&cfg.Muted, "muted", cfg.Muted, "start muted")
	fs.StringVar(&cfg.Game, "game", cfg.Game, "game id to start")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 检查配置取值
func (c Config) Validate() error {
	if c.AgeBand != "" && !slices.Contains(config.RequiredAgeBands, config.AgeBand(c.AgeBand)) {
		return fmt.Errorf("unknown age band %q (want one of %v)", c.AgeBand, config.RequiredAgeBands)
	}
	if c.Game == "" {
		return fmt.Errorf("game id is required")
	}
	return nil
}
