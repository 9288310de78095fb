package services

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"path/filepath"
	"strings"
	"yuepai/internal/config"

	"go.uber.org/zap"
)

// 发送队列长度，队列满时新邮件直接丢弃
const mailQueueSize = 100

type mailJob struct {
	to      []string
	subject string
	body    string
}

// MailService 邮件通知，由后台 worker 逐封发送
type MailService struct {
	cfg          config.SMTP
	templatesDir string
	log          *zap.Logger
	send         func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	queue        chan mailJob
}

func NewMailService(cfg config.SMTP, templatesDir string, log *zap.Logger) *MailService {
	s := &MailService{
		cfg:          cfg,
		templatesDir: templatesDir,
		log:          log,
		send:         smtp.SendMail,
		queue:        make(chan mailJob, mailQueueSize),
	}
	if !cfg.Enabled() {
		log.Warn("MailService disabled: missing SMTP environment variables")
		return s
	}
	go s.worker()
	return s
}

func (s *MailService) Enabled() bool {
	return s.cfg.Enabled()
}

// enqueue 非阻塞加入发送队列
func (s *MailService) enqueue(job mailJob) {
	if !s.Enabled() {
		return
	}
	select {
	case s.queue <- job:
	default:
		s.log.Warn("邮件队列已满，跳过发送", zap.Strings("to", job.to), zap.String("subject", job.subject))
	}
}

// worker 后台处理队列中的邮件
func (s *MailService) worker() {
	for job := range s.queue {
		s.deliver(job)
	}
}

func (s *MailService) deliver(job mailJob) {
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	// 头部中的非 ASCII 和换行按 RFC 2047 编码，昵称里的换行不会变成新的头
	contentType := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", strings.Join(job.to, ","), mime.QEncoding.Encode("UTF-8", "约拍小助手"), s.cfg.From,
		mime.QEncoding.Encode("UTF-8", job.subject), contentType, job.body))

	if err := s.send(addr, auth, s.cfg.From, job.to, msg); err != nil {
		s.log.Error("Failed to send email", zap.Strings("to", job.to), zap.Error(err))
		return
	}
	s.log.Info("Email sent", zap.Strings("to", job.to), zap.String("subject", job.subject))
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join(s.templatesDir, "email", templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendNewRequestNotification 通知发布者有人应征
func (s *MailService) SendNewRequestNotification(email, applicant, content, postLink string) {
	if !s.Enabled() {
		return
	}
	body, err := s.parseTemplate("new_request.html", map[string]string{
		"Applicant": applicant,
		"Content":   content,
		"PostLink":  postLink,
	})
	if err != nil {
		s.log.Error("Error rendering new request email", zap.Error(err))
		return
	}
	s.enqueue(mailJob{
		to:      []string{email},
		subject: "📷 [新应征] " + applicant + " 应征了你的约拍",
		body:    body,
	})
}
