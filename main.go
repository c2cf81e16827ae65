package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"postboard/config"
	"postboard/database"
	"postboard/logger"
	"postboard/web"
	"postboard/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
	defer logger.CloseLogger()

	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func resetSetting() {
	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	err = settingService.ResetSettings()
	if err != nil {
		fmt.Println("reset setting failed:", err)
	} else {
		fmt.Println("reset setting success")
	}
}

func showSetting() {
	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	allSetting, err := settingService.GetAllSetting()
	if err != nil {
		fmt.Println("get current settings failed:", err)
		return
	}
	fmt.Println("current settings as follows:")
	fmt.Println("listen:", allSetting.WebListen)
	fmt.Println("port:", allSetting.WebPort)
	fmt.Println("token expiry minutes:", allSetting.TokenExpiryMinutes)
	fmt.Println("page size:", allSetting.PageSize)
	fmt.Println("audit retention days:", allSetting.AuditRetentionDays)
}

func updateSetting(port int, listen string, tokenMinutes int) {
	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}

	if port > 0 {
		err := settingService.SetPort(port)
		if err != nil {
			fmt.Println("set port failed:", err)
		} else {
			fmt.Printf("set port %v success\n", port)
		}
	}
	if listen != "" {
		err := settingService.SetListen(listen)
		if err != nil {
			fmt.Println("set listen failed:", err)
		} else {
			fmt.Printf("set listen %v success\n", listen)
		}
	}
	if tokenMinutes > 0 {
		err := settingService.SetTokenExpiryMinutes(tokenMinutes)
		if err != nil {
			fmt.Println("set token expiry failed:", err)
		} else {
			fmt.Printf("set token expiry %v minutes success\n", tokenMinutes)
		}
	}
}

func migrateDb() {
	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Start migrating database...")
	fmt.Println("Migration done!")
}

func main() {
	// Environment overrides may live in a .env file next to the binary.
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use: "postboard",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Set settings",
	}

	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset all settings",
		Run: func(cmd *cobra.Command, args []string) {
			resetSetting()
		},
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update settings",
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := cmd.Flags().GetInt("port")
			listen, _ := cmd.Flags().GetString("listen")
			tokenMinutes, _ := cmd.Flags().GetInt("token-minutes")
			updateSetting(port, listen, tokenMinutes)
		},
	}

	updateCmd.Flags().Int("port", 0, "set web server port")
	updateCmd.Flags().String("listen", "", "set web server listen address")
	updateCmd.Flags().Int("token-minutes", 0, "set access token expiry in minutes")

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	}

	settingCmd.AddCommand(resetCmd, showCmd, updateCmd)

	rootCmd.AddCommand(runCmd, migrateCmd, settingCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
