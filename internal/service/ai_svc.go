package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"crm_dev_v1_202601/internal/errs"
	"crm_dev_v1_202601/internal/i18n"
	"crm_dev_v1_202601/internal/model"
)

// Gemini REST 端点与默认模型
const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGeminiModel = "gemini-2.5-flash"

	// 上游 key 失效时返回的特征信息，命中后触发一次换 key 重试
	keyNotFoundMarker = "Requested entity was not found."
)

// AIConfig AI 服务配置
type AIConfig struct {
	APIKey string
	Model  string // 为空时用 DefaultGeminiModel
	// KeySelector 在 key 失效时索取一个新 key；为 nil 时不重试
	KeySelector func(ctx context.Context) (string, error)
}

// GenerateOptions 单次生成的可选参数，nil 字段不下发
type GenerateOptions struct {
	Temperature       *float64
	TopK              *int
	TopP              *float64
	SystemInstruction string
}

// AIService Gemini 文本生成
type AIService struct {
	cfg     AIConfig
	tr      *i18n.Translator
	client  *resty.Client
	baseURL string
}

// NewAIService 初始化，生成请求可能较慢，超时给 60s
func NewAIService(cfg AIConfig, tr *i18n.Translator) *AIService {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &AIService{
		cfg:     cfg,
		tr:      tr,
		baseURL: geminiBaseURL,
		client: resty.New().
			SetTimeout(60 * time.Second).
			SetHeader("User-Agent", "CRM-Go-App/1.0"),
	}
}

// ==================== 请求/响应结构 ====================

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
	TopK        *int     `json:"topK,omitempty"`
	TopP        *float64 `json:"topP,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ==================== 生成入口 ====================

// GenerateText 调一次 Gemini 生成文本
// key 失效（上游报 "Requested entity was not found."）且配置了 KeySelector 时，
// 换 key 后重试一次，仅一次
func (s *AIService) GenerateText(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	if s.cfg.APIKey == "" {
		return "", errs.NewGeneration("Gemini API key 未配置（GEMINI_API_KEY）")
	}

	text, err := s.generateOnce(ctx, s.cfg.APIKey, prompt, opts)
	if err == nil {
		return text, nil
	}

	var ge *errs.GenerationError
	if s.cfg.KeySelector != nil && errors.As(err, &ge) && strings.Contains(ge.Message, keyNotFoundMarker) {
		newKey, kerr := s.cfg.KeySelector(ctx)
		if kerr != nil {
			return "", errs.NewGeneration(fmt.Sprintf("换用新 key 失败: %v", kerr))
		}
		s.cfg.APIKey = newKey
		return s.generateOnce(ctx, newKey, prompt, opts)
	}
	return "", err
}

// generateOnce 发一次请求，不含重试
func (s *AIService) generateOnce(ctx context.Context, apiKey, prompt string, opts *GenerateOptions) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if opts != nil {
		if opts.SystemInstruction != "" {
			body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: opts.SystemInstruction}}}
		}
		if opts.Temperature != nil || opts.TopK != nil || opts.TopP != nil {
			body.GenerationConfig = &geminiGenerationConfig{
				Temperature: opts.Temperature,
				TopK:        opts.TopK,
				TopP:        opts.TopP,
			}
		}
	}

	var result geminiResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("%s/%s:generateContent", s.baseURL, s.cfg.Model))
	if err != nil {
		return "", errs.NewGeneration(fmt.Sprintf("请求 Gemini 失败: %v", err))
	}
	if resp.IsError() {
		if result.Error != nil && result.Error.Message != "" {
			return "", errs.NewGeneration(result.Error.Message)
		}
		return "", errs.NewGeneration(fmt.Sprintf("Gemini 返回 HTTP %d: %s", resp.StatusCode(), resp.String()))
	}

	for _, c := range result.Candidates {
		var sb strings.Builder
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			return sb.String(), nil
		}
	}
	return "", errs.NewGeneration("Gemini 未返回任何生成结果")
}

// ==================== 客户摘要 ====================

// CustomerSummary 汇总客户 + 关联商机/活动，生成一份内部报告式摘要
func (s *AIService) CustomerSummary(ctx context.Context, customer model.Customer, deals []model.Deal, activities []model.Activity) (string, error) {
	notes := customer.Notes
	if notes == "" {
		notes = s.tr.T("customers.detail.no_specific_notes", nil)
	}

	var dealLines string
	if len(deals) == 0 {
		dealLines = s.tr.T("customers.detail.no_related_deals_summary", nil)
	} else {
		lines := make([]string, 0, len(deals))
		for _, d := range deals {
			lines = append(lines, fmt.Sprintf("- Deal: %s, Value: $%.2f, Stage: %s, Close Date: %s", d.Name, d.Value, d.Stage, d.CloseDate))
		}
		dealLines = strings.Join(lines, "\n")
	}

	var activityLines string
	if len(activities) == 0 {
		activityLines = s.tr.T("customers.detail.no_related_activities_summary", nil)
	} else {
		lines := make([]string, 0, len(activities))
		for _, a := range activities {
			lines = append(lines, fmt.Sprintf("- Activity: %s, Type: %s, Status: %s, Due: %s", a.Title, a.Type, a.Status, a.DueDate))
		}
		activityLines = strings.Join(lines, "\n")
	}

	prompt := fmt.Sprintf(`Provide a concise summary of the following CRM customer data, focusing on key details, status, and any relevant notes.
Format the summary as a professional internal report, use markdown.

Customer Name: %s
Company: %s
Email: %s
Phone: %s
Status: %s
Notes: %s

Related Deals:
%s

Related Activities:
%s
`, customer.Name, customer.Company, customer.Email, customer.Phone, customer.Status, notes, dealLines, activityLines)

	temp := 0.7
	return s.GenerateText(ctx, prompt, &GenerateOptions{Temperature: &temp})
}
