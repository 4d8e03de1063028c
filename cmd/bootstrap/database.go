package bootstrap

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/willtroppe/callrep/internal/models"
	"github.com/willtroppe/callrep/pkg/config"
	"github.com/willtroppe/callrep/pkg/logger"
	"github.com/willtroppe/callrep/pkg/utils"
)

// Options controls database initialization behavior
type Options struct {
	// InitSQLPath points to a .sql script file (optional); skip if empty
	InitSQLPath string
	// AutoMigrate whether to execute entity migration (default true)
	AutoMigrate bool
	// SeedNonProd whether to write sample data in non-production environments
	SeedNonProd bool
}

// SetupDatabase unified entry: connect database -> run initialization SQL ->
// migrate entities -> (non-production) seed sample data
func SetupDatabase(logWriter io.Writer, opts *Options) (*gorm.DB, error) {
	if opts == nil {
		opts = &Options{AutoMigrate: true, SeedNonProd: true}
	}

	db, err := initDBConn(logWriter)
	if err != nil {
		logger.Error("init database failed", zap.Error(err))
		return nil, err
	}

	if opts.InitSQLPath != "" {
		if err := RunInitSQL(db, opts.InitSQLPath); err != nil {
			logger.Error("run init sql failed", zap.String("path", opts.InitSQLPath), zap.Error(err))
			return nil, err
		}
	}

	if opts.AutoMigrate {
		if err := RunMigrations(db); err != nil {
			logger.Error("migration failed", zap.Error(err))
			return nil, err
		}
		logger.Info("migration success",
			zap.String("database", config.GlobalConfig.DBDriver),
			zap.String("dsn", config.GlobalConfig.DSN),
		)
	}

	if opts.SeedNonProd && utils.GetEnv("APP_ENV") != "production" {
		service := SeedService{db: db}
		if err := service.SeedAll(); err != nil {
			logger.Error("seed failed", zap.Error(err))
			return nil, err
		}
	}

	logger.Info("system bootstrap - database initialization complete")
	return db, nil
}

// initDBConn creates *gorm.DB based on global configuration
func initDBConn(logWriter io.Writer) (*gorm.DB, error) {
	return utils.InitDatabase(logWriter, config.GlobalConfig.DBDriver, config.GlobalConfig.DSN)
}

// RunInitSQL executes SQL statements from a local .sql file segment by segment
// (split by semicolon), idempotent scripts should use IF NOT EXISTS for protection
func RunInitSQL(db *gorm.DB, sqlFilePath string) error {
	f, err := os.Open(sqlFilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		sb      strings.Builder
		scanner = bufio.NewScanner(f)
	)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "--") || strings.HasPrefix(trim, "#") {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		if strings.HasSuffix(trim, ";") {
			stmt := strings.TrimSpace(sb.String())
			sb.Reset()
			if stmt != "" {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
		}
	}
	rest := strings.TrimSpace(sb.String())
	if rest != "" {
		if err := db.Exec(rest).Error; err != nil {
			return err
		}
	}
	return scanner.Err()
}

// RunMigrations executes entity migration
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}
	return utils.MakeMigrates(db, []any{
		&models.Representative{},
		&models.RepresentativePhone{},
		&models.CallScript{},
		&models.CallLog{},
	})
}

// LogConfigInfo prints the effective configuration at startup.
func LogConfigInfo() {
	cfg := config.GlobalConfig
	logger.Info("configuration loaded",
		zap.String("server", cfg.ServerName),
		zap.String("mode", cfg.Mode),
		zap.String("addr", cfg.Addr),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("api_prefix", cfg.APIPrefix),
		zap.Duration("workflow_ttl", cfg.WorkflowTTL),
		zap.Bool("civic_directory", cfg.CivicAPIURL != ""),
		zap.Bool("llm_scripts", cfg.LLMApiKey != ""),
	)
}
