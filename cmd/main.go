package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"crm_dev_v1_202601/internal/engine"
	"crm_dev_v1_202601/internal/errs"
	"crm_dev_v1_202601/internal/i18n"
	"crm_dev_v1_202601/internal/model"
	"crm_dev_v1_202601/internal/service"
	"crm_dev_v1_202601/internal/store"
	"crm_dev_v1_202601/pkg/storage"
)

func main() {
	// .env 不存在不算错误
	_ = godotenv.Load()

	deps, err := initDependencies(context.Background())
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	app := &cli.App{
		Name:  "crm",
		Usage: "权限分级的 CRM 数据管理工具",
		Commands: []*cli.Command{
			loginCommand(deps),
			logoutCommand(deps),
			registerCommand(deps),
			listCommand(deps),
			addCommand(deps),
			updateCommand(deps),
			deleteCommand(deps),
			exportCommand(deps),
			importCommand(deps),
			summaryCommand(deps),
			statsCommand(deps),
			commissionsCommand(deps),
			rateCommand(deps),
			langCommand(deps),
			labelCommand(deps),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Blob  storage.BlobStore
	Store *store.Store
	Tr    *i18n.Translator
	Auth  *service.AuthService
	CRM   *service.CRMService
	AI    *service.AIService
	Stats *service.StatsService
}

// initDependencies 初始化所有依赖
func initDependencies(ctx context.Context) (*Dependencies, error) {
	blob, err := storage.NewBlobStore(&storage.Config{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		BaseDir:   getEnv("STORAGE_DIR", ""),
		DSN:       getEnv("DATABASE_DSN", ""),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "crm"),
	})
	if err != nil {
		return nil, fmt.Errorf("存储初始化失败: %w", err)
	}

	st := store.Open(ctx, blob)
	tr := i18n.New(ctx, blob)
	if lang := os.Getenv("CRM_LANG"); lang != "" {
		tr.ChangeLanguage(ctx, lang)
	}

	crm := service.NewCRMService(st, tr)
	ai := service.NewAIService(service.AIConfig{
		APIKey:      getEnv("GEMINI_API_KEY", ""),
		Model:       getEnv("GEMINI_MODEL", ""),
		KeySelector: promptForKey,
	}, tr)

	return &Dependencies{
		Blob:  blob,
		Store: st,
		Tr:    tr,
		Auth:  service.NewAuthService(st),
		CRM:   crm,
		AI:    ai,
		Stats: service.NewStatsService(crm),
	}, nil
}

// promptForKey key 失效时从终端索取一个新 key
func promptForKey(ctx context.Context) (string, error) {
	fmt.Fprint(os.Stderr, "Gemini API key 已失效，请输入新的 key: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return "", errors.New("未输入 key")
	}
	return key, nil
}

// ==================== 认证命令 ====================

func loginCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "邮箱 + 密码登录",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			user, err := deps.Auth.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			fmt.Println(deps.Tr.T("common.logged_in_as", map[string]any{
				"username": user.Username, "role": user.Role,
			}))
			return nil
		},
	}
}

func logoutCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "登出并重置全部数据",
		Action: func(c *cli.Context) error {
			deps.Auth.Logout(c.Context)
			fmt.Println(deps.Tr.T("common.logged_out", nil))
			return nil
		},
	}
}

func registerCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "注册新账号",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "role", Value: string(model.RoleSales), Usage: "Admin / Sales / Viewer"},
		},
		Action: func(c *cli.Context) error {
			role := model.UserRole(c.String("role"))
			switch role {
			case model.RoleAdmin, model.RoleSales, model.RoleViewer:
			default:
				return cli.Exit(fmt.Sprintf("未知角色: %s", role), 1)
			}
			user, err := deps.Auth.Register(c.Context, c.String("username"), c.String("email"), c.String("password"), role)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			fmt.Println(deps.Tr.T("auth_page.register_success", map[string]any{"username": user.Username}))
			return nil
		},
	}
}

// ==================== 实体 CRUD 命令 ====================

func listCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "列出可见记录",
		ArgsUsage: "<customers|suppliers|deals|activities|campaigns|products>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "关键词过滤"},
			&cli.StringFlag{Name: "sort", Usage: "排序字段"},
			&cli.BoolFlag{Name: "desc", Usage: "降序"},
		},
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			dir := engine.Ascending
			if c.Bool("desc") {
				dir = engine.Descending
			}
			query, sortKey := c.String("search"), c.String("sort")

			var out any
			switch kind := c.Args().First(); kind {
			case "customers":
				records := deps.CRM.SearchCustomers(caller, query)
				if sortKey != "" {
					records = deps.CRM.SortCustomers(records, sortKey, dir)
				}
				out = records
			case "suppliers":
				records := deps.CRM.SearchSuppliers(caller, query)
				if sortKey != "" {
					records = deps.CRM.SortSuppliers(records, sortKey, dir)
				}
				out = records
			case "deals":
				records := deps.CRM.SearchDeals(caller, query)
				if sortKey != "" {
					records = deps.CRM.SortDeals(records, sortKey, dir)
				}
				out = records
			case "activities":
				records := deps.CRM.SearchActivities(caller, query)
				if sortKey != "" {
					records = deps.CRM.SortActivities(records, sortKey, dir)
				}
				out = records
			case "campaigns":
				records := deps.CRM.SearchCampaigns(caller, query)
				if sortKey != "" {
					records = deps.CRM.SortCampaigns(records, sortKey, dir)
				}
				out = records
			case "products":
				records := deps.CRM.SearchProducts(caller, query)
				if sortKey != "" {
					records = deps.CRM.SortProducts(records, sortKey, dir)
				}
				out = records
			default:
				return cli.Exit(fmt.Sprintf("未知实体类型: %s", kind), 1)
			}
			return printJSON(out)
		},
	}
}

func addCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "新建记录，--json 传实体内容",
		ArgsUsage: "<kind>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "json", Required: true},
		},
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			payload := []byte(c.String("json"))

			var created any
			switch kind := c.Args().First(); kind {
			case "customers":
				var in model.Customer
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				created, err = deps.CRM.AddCustomer(c.Context, caller, in)
			case "suppliers":
				var in model.Supplier
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				created, err = deps.CRM.AddSupplier(c.Context, caller, in)
			case "deals":
				var in model.Deal
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				created, err = deps.CRM.AddDeal(c.Context, caller, in)
			case "activities":
				var in model.Activity
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				created, err = deps.CRM.AddActivity(c.Context, caller, in)
			case "campaigns":
				var in model.Campaign
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				created, err = deps.CRM.AddCampaign(c.Context, caller, in)
			case "products":
				var in model.Product
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				created, err = deps.CRM.AddProduct(c.Context, caller, in)
			default:
				return cli.Exit(fmt.Sprintf("未知实体类型: %s", kind), 1)
			}
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			return printJSON(created)
		},
	}
}

func updateCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "整体更新记录，--json 必须带 id",
		ArgsUsage: "<kind>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "json", Required: true},
		},
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			payload := []byte(c.String("json"))

			switch kind := c.Args().First(); kind {
			case "customers":
				var in model.Customer
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				err = deps.CRM.UpdateCustomer(c.Context, caller, in)
			case "suppliers":
				var in model.Supplier
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				err = deps.CRM.UpdateSupplier(c.Context, caller, in)
			case "deals":
				var in model.Deal
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				err = deps.CRM.UpdateDeal(c.Context, caller, in)
			case "activities":
				var in model.Activity
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				err = deps.CRM.UpdateActivity(c.Context, caller, in)
			case "campaigns":
				var in model.Campaign
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				err = deps.CRM.UpdateCampaign(c.Context, caller, in)
			case "products":
				var in model.Product
				if err := json.Unmarshal(payload, &in); err != nil {
					return cli.Exit(fmt.Sprintf("JSON 解析失败: %v", err), 1)
				}
				err = deps.CRM.UpdateProduct(c.Context, caller, in)
			default:
				return cli.Exit(fmt.Sprintf("未知实体类型: %s", kind), 1)
			}
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			fmt.Println("OK")
			return nil
		},
	}
}

func deleteCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "删除记录（客户/供应商/商机会级联清理关联数据）",
		ArgsUsage: "<kind>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true},
		},
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			id := c.String("id")

			switch kind := c.Args().First(); kind {
			case "customers":
				err = deps.CRM.DeleteCustomer(c.Context, caller, id)
			case "suppliers":
				err = deps.CRM.DeleteSupplier(c.Context, caller, id)
			case "deals":
				err = deps.CRM.DeleteDeal(c.Context, caller, id)
			case "activities":
				err = deps.CRM.DeleteActivity(c.Context, caller, id)
			case "campaigns":
				err = deps.CRM.DeleteCampaign(c.Context, caller, id)
			case "products":
				err = deps.CRM.DeleteProduct(c.Context, caller, id)
			default:
				return cli.Exit(fmt.Sprintf("未知实体类型: %s", kind), 1)
			}
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			fmt.Println("OK")
			return nil
		},
	}
}

// ==================== 导入导出命令 ====================

func exportCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "导出可见记录为 JSON 文件",
		ArgsUsage: "<kind>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "输出文件，默认 <kind>.json"},
		},
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			kind := c.Args().First()

			var data []byte
			switch kind {
			case "customers":
				data, err = deps.CRM.ExportCustomers(caller)
			case "suppliers":
				data, err = deps.CRM.ExportSuppliers(caller)
			case "deals":
				data, err = deps.CRM.ExportDeals(caller)
			case "activities":
				data, err = deps.CRM.ExportActivities(caller)
			case "campaigns":
				data, err = deps.CRM.ExportCampaigns(caller)
			case "products":
				data, err = deps.CRM.ExportProducts(caller)
			default:
				return cli.Exit(fmt.Sprintf("未知实体类型: %s", kind), 1)
			}
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}

			out := c.String("out")
			if out == "" {
				out = kind + ".json"
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("写文件失败: %v", err), 1)
			}
			fmt.Println(deps.Tr.T(kind+".exported_success", map[string]any{
				"filename": strings.TrimSuffix(out, ".json"),
			}))
			return nil
		},
	}
}

func importCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "从 JSON 文件导入记录（追加，重新分配 id）",
		ArgsUsage: "<kind>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true},
		},
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			data, err := os.ReadFile(c.String("file"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("读文件失败: %v", err), 1)
			}
			kind := c.Args().First()

			switch kind {
			case "customers":
				err = deps.CRM.ImportCustomers(c.Context, caller, data)
			case "suppliers":
				err = deps.CRM.ImportSuppliers(c.Context, caller, data)
			case "deals":
				err = deps.CRM.ImportDeals(c.Context, caller, data)
			case "activities":
				err = deps.CRM.ImportActivities(c.Context, caller, data)
			case "campaigns":
				err = deps.CRM.ImportCampaigns(c.Context, caller, data)
			case "products":
				err = deps.CRM.ImportProducts(c.Context, caller, data)
			default:
				return cli.Exit(fmt.Sprintf("未知实体类型: %s", kind), 1)
			}
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			fmt.Println(deps.Tr.T(kind+".imported_success", nil))
			return nil
		},
	}
}

// ==================== AI / 统计命令 ====================

func summaryCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "用 Gemini 生成客户摘要",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "customer-id", Required: true},
		},
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			id := c.String("customer-id")

			customer, err := deps.CRM.GetCustomer(caller, id)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}

			var deals []model.Deal
			for _, d := range deps.CRM.ListDeals(caller) {
				if d.CustomerID == id {
					deals = append(deals, d)
				}
			}
			var activities []model.Activity
			for _, a := range deps.CRM.ListActivities(caller) {
				if a.CustomerID == id {
					activities = append(activities, a)
				}
			}

			summary, err := deps.AI.CustomerSummary(c.Context, customer, deals, activities)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			fmt.Println(summary)
			return nil
		},
	}
}

func statsCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "仪表盘汇总指标",
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			stats := deps.Stats.Dashboard(caller)
			tr := deps.Tr
			fmt.Println(tr.T("dashboard.title", nil))
			fmt.Printf("  %s: %d\n", tr.T("dashboard.total_customers", nil), stats.TotalCustomers)
			fmt.Printf("  %s: %d\n", tr.T("dashboard.active_deals", nil), stats.ActiveDeals)
			fmt.Printf("  %s: %d\n", tr.T("dashboard.pending_activities", nil), stats.PendingActivities)
			fmt.Printf("  %s: $%.2f\n", tr.T("dashboard.total_deal_value", nil), stats.TotalDealValue)
			fmt.Printf("  %s: $%.2f\n", tr.T("dashboard.deal_forecast", nil), stats.DealForecast)

			upcoming := deps.Stats.UpcomingActivities(caller, 5)
			if len(upcoming) > 0 {
				fmt.Println()
				for _, a := range upcoming {
					fmt.Printf("  [%s] %s (%s)\n", a.DueDate, a.Title, a.Type)
				}
			}
			won := deps.Stats.RecentWonDeals(caller, 5)
			if len(won) > 0 {
				fmt.Println()
				for _, d := range won {
					fmt.Printf("  [%s] %s $%.2f\n", d.CloseDate, d.Name, d.Value)
				}
			}
			return nil
		},
	}
}

func commissionsCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "commissions",
		Usage: "佣金报表",
		Action: func(c *cli.Context) error {
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			report := deps.Stats.Commissions(caller)
			tr := deps.Tr
			fmt.Println(tr.T("commissions.title", nil))
			fmt.Printf("  %s\n", tr.T("commissions.current_rate", map[string]any{
				"rate": fmt.Sprintf("%.1f", report.Rate*100),
			}))
			fmt.Printf("  %s: $%.2f\n", tr.T("commissions.total_won_value", nil), report.TotalWonValue)
			fmt.Printf("  %s: $%.2f\n", tr.T("commissions.total_commission", nil), report.TotalCommission)
			for _, d := range report.WonDeals {
				fmt.Printf("  - %s: $%.2f -> $%.2f\n", d.Name, d.Value, d.Value*report.Rate)
			}
			return nil
		},
	}
}

func rateCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "rate",
		Usage: "查看/修改佣金率（修改仅 Admin）",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "set", Usage: "新费率，0-1 之间的小数"},
		},
		Action: func(c *cli.Context) error {
			if !c.IsSet("set") {
				fmt.Printf("%.4f\n", deps.CRM.CommissionRate())
				return nil
			}
			caller, err := requireCaller(deps)
			if err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			if err := deps.CRM.SetCommissionRate(c.Context, caller, c.Float64("set")); err != nil {
				return cli.Exit(humanError(deps.Tr, err), 1)
			}
			fmt.Println("OK")
			return nil
		},
	}
}

// ==================== 本地化命令 ====================

func langCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:      "lang",
		Usage:     "查看/切换界面语言（en / zh），跨登出保留",
		ArgsUsage: "[lang]",
		Action: func(c *cli.Context) error {
			if c.Args().First() == "" {
				fmt.Println(deps.Tr.Language())
				return nil
			}
			deps.Tr.ChangeLanguage(c.Context, c.Args().First())
			fmt.Println(deps.Tr.Language())
			return nil
		},
	}
}

func labelCommand(deps *Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "label",
		Usage: "自定义界面标签",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key"},
			&cli.StringFlag{Name: "value"},
			&cli.BoolFlag{Name: "reset", Usage: "清空全部自定义标签"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("reset") {
				deps.Tr.ResetCustomLabels(c.Context)
				fmt.Println("OK")
				return nil
			}
			key := c.String("key")
			if key == "" {
				return cli.Exit("需要 --key", 1)
			}
			if !c.IsSet("value") {
				fmt.Println(deps.Tr.GetLabel(key, ""))
				return nil
			}
			deps.Tr.SetCustomLabel(c.Context, key, c.String("value"))
			fmt.Println("OK")
			return nil
		},
	}
}

// ==================== 工具函数 ====================

// requireCaller 需要已登录的会话
func requireCaller(deps *Dependencies) (model.Caller, error) {
	caller, ok := deps.Auth.CurrentCaller()
	if !ok {
		return model.Caller{}, errs.NewPermission()
	}
	return caller, nil
}

// humanError 错误 -> 当前语言的展示文案
func humanError(tr *i18n.Translator, err error) string {
	args := map[string]any{}
	var fe *errs.FormatError
	if errors.As(err, &fe) {
		args["message"] = fe.Reason
	}
	var ge *errs.GenerationError
	if errors.As(err, &ge) {
		args["message"] = ge.Message
	}
	return tr.T(errs.MessageKey(err), args)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
