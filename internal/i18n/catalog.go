package i18n

// catalogs 静态文案字典；新增语言时在此补一份同结构的表
var catalogs = map[string]map[string]any{
	"en": catalogEN,
	"zh": catalogZH,
}

var catalogEN = map[string]any{
	"app_name": "CRM App",
	"common": map[string]any{
		"permission_denied":  "You do not have permission to perform this action.",
		"not_found":          "The requested record was not found.",
		"import_failed":      "Failed to import data: {{message}}",
		"generation_failed":  "Failed to generate content: {{message}}",
		"unknown_error":      "An unexpected error occurred.",
		"settings":           "Settings",
		"personalize_labels": "Personalize Labels",
		"logged_in_as":       "Logged in as {{username}} ({{role}})",
		"logged_out":         "Logged out. All data has been reset.",
	},
	"auth_page": map[string]any{
		"login_title":              "Login",
		"register_title":           "Register",
		"email_label":              "Email",
		"password_label":           "Password",
		"email_required":           "Email is required",
		"password_required":        "Password is required",
		"password_length":          "Password must be at least 6 characters",
		"email_already_registered": "This email is already registered",
		"invalid_credentials":      "Invalid email or password",
		"register_success":         "Account created for {{username}}",
	},
	"customers": map[string]any{
		"title":              "Customers",
		"confirm_delete":     "Are you sure you want to delete this customer? This will also delete related deals and activities.",
		"exported_success":   "Customers exported to {{filename}}.json successfully!",
		"imported_success":   "Customers imported successfully!",
		"no_customers_found": "No customers found. Add a new customer to get started.",
		"detail": map[string]any{
			"gemini_summary":                "Gemini AI Summary",
			"error_generating_summary":      "Failed to generate summary.",
			"no_specific_notes":             "No specific notes.",
			"no_related_deals_summary":      "No deals associated with this customer.",
			"no_related_activities_summary": "No activities associated with this customer.",
		},
	},
	"suppliers": map[string]any{
		"title":            "Suppliers",
		"confirm_delete":   "Are you sure you want to delete this supplier? This will also delete related activities.",
		"exported_success": "Suppliers exported to {{filename}}.json successfully!",
		"imported_success": "Suppliers imported successfully!",
	},
	"deals": map[string]any{
		"title":            "Deals",
		"confirm_delete":   "Are you sure you want to delete this deal? This will also delete related activities.",
		"exported_success": "Deals exported to {{filename}}.json successfully!",
		"imported_success": "Deals imported successfully!",
	},
	"activities": map[string]any{
		"title":            "Activities",
		"confirm_delete":   "Are you sure you want to delete this activity?",
		"exported_success": "Activities exported to {{filename}}.json successfully!",
		"imported_success": "Activities imported successfully!",
	},
	"campaigns": map[string]any{
		"title":            "Campaigns",
		"confirm_delete":   "Are you sure you want to delete this campaign?",
		"exported_success": "Campaigns exported to {{filename}}.json successfully!",
		"imported_success": "Campaigns imported successfully!",
	},
	"products": map[string]any{
		"title":            "Products",
		"confirm_delete":   "Are you sure you want to delete this product?",
		"exported_success": "Products exported to {{filename}}.json successfully!",
		"imported_success": "Products imported successfully!",
	},
	"dashboard": map[string]any{
		"title":              "Dashboard Overview",
		"total_customers":    "Total Customers",
		"active_deals":       "Active Deals",
		"pending_activities": "Pending Activities",
		"total_deal_value":   "Total Deal Value",
		"deal_forecast":      "Deal Forecast (Weighted)",
	},
	"commissions": map[string]any{
		"title":           "Commissions",
		"total_won_value": "Total Won Deal Value",
		"total_commission": "Total Commission",
		"current_rate":    "Current rate: {{rate}}%",
		"rate_admin_only": "Only administrators can change the commission rate.",
	},
	"sidebar": map[string]any{
		"dashboard":   "Dashboard",
		"customers":   "Customers",
		"deals":       "Deals",
		"activities":  "Activities",
		"suppliers":   "Suppliers",
		"campaigns":   "Campaigns",
		"products":    "Products",
		"commissions": "Commissions",
	},
}

var catalogZH = map[string]any{
	"app_name": "CRM 应用",
	"common": map[string]any{
		"permission_denied":  "你没有执行此操作的权限。",
		"not_found":          "找不到请求的记录。",
		"import_failed":      "导入数据失败：{{message}}",
		"generation_failed":  "生成内容失败：{{message}}",
		"unknown_error":      "发生未知错误。",
		"settings":           "设置",
		"personalize_labels": "自定义标签",
		"logged_in_as":       "当前登录：{{username}}（{{role}}）",
		"logged_out":         "已登出，所有数据已重置。",
	},
	"auth_page": map[string]any{
		"login_title":              "登录",
		"register_title":           "注册",
		"email_label":              "邮箱",
		"password_label":           "密码",
		"email_required":           "邮箱不能为空",
		"password_required":        "密码不能为空",
		"password_length":          "密码至少 6 位",
		"email_already_registered": "该邮箱已注册",
		"invalid_credentials":      "邮箱或密码错误",
		"register_success":         "已为 {{username}} 创建账号",
	},
	"customers": map[string]any{
		"title":            "客户",
		"confirm_delete":   "确定删除该客户？相关商机与活动将一并删除。",
		"exported_success": "客户已导出到 {{filename}}.json！",
		"imported_success": "客户导入成功！",
	},
	"suppliers": map[string]any{
		"title":            "供应商",
		"confirm_delete":   "确定删除该供应商？相关活动将一并删除。",
		"exported_success": "供应商已导出到 {{filename}}.json！",
		"imported_success": "供应商导入成功！",
	},
	"deals": map[string]any{
		"title":            "商机",
		"confirm_delete":   "确定删除该商机？相关活动将一并删除。",
		"exported_success": "商机已导出到 {{filename}}.json！",
		"imported_success": "商机导入成功！",
	},
	"activities": map[string]any{
		"title":            "活动",
		"confirm_delete":   "确定删除该活动？",
		"exported_success": "活动已导出到 {{filename}}.json！",
		"imported_success": "活动导入成功！",
	},
	"campaigns": map[string]any{
		"title":            "营销活动",
		"confirm_delete":   "确定删除该营销活动？",
		"exported_success": "营销活动已导出到 {{filename}}.json！",
		"imported_success": "营销活动导入成功！",
	},
	"products": map[string]any{
		"title":            "产品",
		"confirm_delete":   "确定删除该产品？",
		"exported_success": "产品已导出到 {{filename}}.json！",
		"imported_success": "产品导入成功！",
	},
	"dashboard": map[string]any{
		"title":              "仪表盘",
		"total_customers":    "客户总数",
		"active_deals":       "进行中商机",
		"pending_activities": "待办活动",
		"total_deal_value":   "商机总额",
		"deal_forecast":      "加权预测",
	},
	"commissions": map[string]any{
		"title":            "佣金",
		"total_won_value":  "成交总额",
		"total_commission": "佣金总额",
		"current_rate":     "当前费率：{{rate}}%",
		"rate_admin_only":  "只有管理员可以修改佣金率。",
	},
	"sidebar": map[string]any{
		"dashboard":   "仪表盘",
		"customers":   "客户",
		"deals":       "商机",
		"activities":  "活动",
		"suppliers":   "供应商",
		"campaigns":   "营销活动",
		"products":    "产品",
		"commissions": "佣金",
	},
}
