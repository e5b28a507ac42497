package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"text/tabwriter"
	"time"
)

// AuthCookieName 管理员会话 cookie
const AuthCookieName = "admin_token"

// APIBenchmark 对单个接口发起固定数量的并发请求
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthCookie  *http.Cookie
	Client      *http.Client
}

// BenchmarkResult 一轮压测的汇总
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	Responded      int           `json:"responded"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	P50Time        time.Duration `json:"p50_time"`
	P95Time        time.Duration `json:"p95_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// NewAPIBenchmark 创建压测实例，authCookie 为 nil 时匿名请求
func NewAPIBenchmark(baseURL string, concurrency, requests int, authCookie *http.Cookie) *APIBenchmark {
	if concurrency < 1 {
		concurrency = 1
	}
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthCookie:  authCookie,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Login 调用登录接口并返回会话 cookie
func (b *APIBenchmark) Login(path, email, password string) (*http.Cookie, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	resp, err := b.Client.Post(b.BaseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("登录失败: 状态码 %d", resp.StatusCode)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == AuthCookieName {
			return cookie, nil
		}
	}
	return nil, fmt.Errorf("登录响应中没有 %s", AuthCookieName)
}

// RunGET 压测 GET 接口
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.Run(http.MethodGet, path, nil)
}

// RunPOST 压测 POST 接口，payload 编码为 JSON
func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	return b.Run(http.MethodPost, path, payload)
}

// Run 以 Concurrency 个 worker 发送 Requests 个请求
func (b *APIBenchmark) Run(method, path string, payload interface{}) *BenchmarkResult {
	url := b.BaseURL + path

	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &BenchmarkResult{URL: url, Method: method, Errors: []string{fmt.Sprintf("JSON编码错误: %v", err)}}
		}
		body = data
	}

	rec := newRecorder(b.Requests)
	jobs := make(chan struct{})
	var wg sync.WaitGroup

	started := time.Now()
	for w := 0; w < b.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				status, elapsed, err := b.send(method, url, body)
				rec.add(status, elapsed, err)
			}
		}()
	}
	for i := 0; i < b.Requests; i++ {
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()

	result := rec.summarize(time.Since(started))
	result.URL = url
	result.Method = method
	result.Concurrency = b.Concurrency
	result.TotalRequests = b.Requests
	return result
}

// send 发送单个请求并读完响应体，耗时包含读取响应
func (b *APIBenchmark) send(method, url string, body []byte) (int, time.Duration, error) {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.AuthCookie != nil {
		req.AddCookie(b.AuthCookie)
	}

	start := time.Now()
	resp, err := b.Client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, time.Since(start), nil
}

// recorder 并发收集单个请求的结果
type recorder struct {
	mu        sync.Mutex
	durations []time.Duration
	statuses  map[int]int
	success   int
	errors    []string
}

func newRecorder(expected int) *recorder {
	return &recorder{
		durations: make([]time.Duration, 0, expected),
		statuses:  make(map[int]int),
	}
}

func (r *recorder) add(status int, elapsed time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.errors = append(r.errors, err.Error())
		return
	}
	r.durations = append(r.durations, elapsed)
	r.statuses[status]++
	if status >= 200 && status < 300 {
		r.success++
	}
}

func (r *recorder) summarize(elapsed time.Duration) *BenchmarkResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	responded := len(r.durations)
	result := &BenchmarkResult{
		Responded:    responded,
		SuccessCount: r.success,
		FailureCount: responded - r.success + len(r.errors),
		TotalTime:    elapsed,
		StatusCodes:  r.statuses,
		Errors:       r.errors,
	}
	if elapsed > 0 {
		result.RequestsPerSec = float64(responded+len(r.errors)) / elapsed.Seconds()
	}
	if responded == 0 {
		return result
	}

	sorted := append([]time.Duration(nil), r.durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	result.AverageTime = total / time.Duration(responded)
	result.MinTime = sorted[0]
	result.MaxTime = sorted[responded-1]
	result.P50Time = percentile(sorted, 50)
	result.P95Time = percentile(sorted, 95)
	return result
}

// percentile 最近秩法，sorted 已升序
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// SuccessRate 成功请求占比
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// PrintResult 以表格输出到标准输出
func (r *BenchmarkResult) PrintResult() {
	r.Fprint(os.Stdout)
}

// Fprint 以表格输出压测结果
func (r *BenchmarkResult) Fprint(out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s %s\t并发 %d\t请求 %d\t成功 %d\t失败 %d\t成功率 %.1f%%\n",
		r.Method, r.URL, r.Concurrency, r.TotalRequests, r.SuccessCount, r.FailureCount, r.SuccessRate())
	fmt.Fprintf(tw, "耗时\t总计 %s\t平均 %s\tP50 %s\tP95 %s\t最小 %s\t最大 %s\n",
		r.TotalTime, r.AverageTime, r.P50Time, r.P95Time, r.MinTime, r.MaxTime)
	fmt.Fprintf(tw, "吞吐\t%.2f req/s\n", r.RequestsPerSec)

	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(tw, "状态码\t%d\t%d\n", code, r.StatusCodes[code])
	}

	for i, err := range r.Errors {
		if i == 5 {
			fmt.Fprintf(tw, "错误\t... 还有 %d 个\n", len(r.Errors)-5)
			break
		}
		fmt.Fprintf(tw, "错误\t%s\n", err)
	}
	tw.Flush()
}
