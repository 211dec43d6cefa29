// Package crawlers 提供LinkedIn公司数据的页面抓取能力
//
// # 概述
//
// crawlers包把浏览器自动化、字段提取、请求节流和登录会话拆成互相独立的组件,
// 编排层只依赖 Page / Element / Finder 三个接口,因此同一套抓取逻辑既可以跑在
// go-rod渲染的真实浏览器上,也可以跑在goquery解析的静态HTML上。
//
// # 核心组件
//
// ## Extract (字段提取)
//
// 每个字段对应一组按优先级排列的候选选择器,依次尝试,返回第一个非空值。
// 选择器错误、元素缺失以及驱动panic都只算该候选失败,全部失败时返回默认值。
//
//	name := Extract(page, "name", []Candidate{
//	    Text("h1.org-top-card-summary__title"),
//	    Text("h1"),
//	}, "Unknown")
//
//	followers := ExtractCount(page, "follower_count", []Candidate{
//	    Text(".org-top-card-summary-info-list__info-item").Where(ContainsAny("follower")),
//	})
//
// ## Pacer (请求节流)
//
// 保证相邻两次请求至少间隔 request_delay,可选每分钟请求上限。
// 服务模式下所有编排运行共享同一个Pacer。
//
//	pacer := NewPacer(3*time.Second, 10)
//	if err := pacer.Wait(ctx); err != nil { /* ctx已取消 */ }
//
// ## Session (登录会话)
//
// 显式状态机: logged_out → logging_in → logged_in | login_failed。
// 只有 logged_in 状态下 Page() 才返回页面,Close() 幂等并回到 logged_out。
// 启动浏览器前由 ResourceMonitor 检查可用内存和CPU负载。
//
//	session := NewSession(RodLauncher{}, pacer, cfg, BrowserOptions{Headless: true})
//	defer session.Close()
//	if err := session.Login(ctx, creds); err != nil { /* 进入降级 */ }
//
// ## Scraper (页面抓取)
//
// 每次访问页面都经过: 节流 → 导航 → 等待页面容器。
// 容器缺失属于页面级失败,返回错误;列表页通过滚动增量加载,
// 达到上限、没有新增条目或轮数用尽时停止。
//
//	scraper := NewScraper(page, pacer, cfg)
//	url, err := scraper.SearchCompany(ctx, "Acme")
//	posts, err := scraper.ScrapePosts(ctx, url)
//
// ## 页面实现
//
//   - RodPage: go-rod驱动的Chrome标签页,支持User-Agent覆盖、额外请求头和代理
//   - StaticPage: goquery解析的静态文档,选择器由cascadia预编译,滚动为空操作
//
// StaticPage 配合 NewCollyLoader 用于访问公司官网补全简介,
// 配合 StaticLoader 用于测试中的内存页面。
//
// # 错误处理
//
// 哨兵错误定义在 page.go 中,调用方使用 errors.Is 判断:
//
//	ErrCredentialsMissing     未配置凭据
//	ErrLoginFailed            登录被拒或需要安全验证
//	ErrNavigationTimeout      导航超时
//	ErrElementNotFound        页面容器缺失
//	ErrCompanyNotFound        搜索无结果
//	ErrNotLoggedIn            会话未登录
//	ErrBrowserCrashed         驱动panic
//	ErrInsufficientResources  系统资源不足
package crawlers
