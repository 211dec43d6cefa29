package crawlers

import (
	"testing"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

func TestClassifyDepartment(t *testing.T) {
	tests := []struct {
		title    string
		expected models.Department
	}{
		{"Senior Engineering Manager", models.DeptEngineering},
		{"Software Engineer", models.DeptEngineering},
		{"Product Designer", models.DeptProduct},
		{"Account Executive", models.DeptSales},
		{"Growth Marketing Lead", models.DeptMarketing},
		{"HR Business Partner", models.DeptHR},
		{"Financial Controller", models.DeptFinance},
		{"Operations Manager", models.DeptManagement},
		{"Office Coordinator", models.DeptOperations},
		{"Chrome Extension Specialist", models.DeptOperations}, // hr 不能匹配 chrome
		{"", models.DeptOperations},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := ClassifyDepartment(tt.title); got != tt.expected {
				t.Errorf("ClassifyDepartment(%q) = %s, 期望 %s", tt.title, got, tt.expected)
			}
		})
	}
}

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		title    string
		expected models.SeniorityLevel
	}{
		{"Senior Engineering Manager", models.LevelManager},
		{"CEO & Co-Founder", models.LevelCLevel},
		{"Vice-President, Sales", models.LevelVP},
		{"VP of Engineering", models.LevelVP},
		{"Head of Design", models.LevelDirector},
		{"Tech Lead", models.LevelManager},
		{"Sr. Data Scientist", models.LevelSenior},
		{"Principal Engineer", models.LevelSenior},
		{"Junior Developer", models.LevelJunior},
		{"Associate Consultant", models.LevelJunior},
		{"Software Engineer", models.LevelEntry},
		{"Leader of the pack", models.LevelEntry}, // 整词匹配
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := ClassifyLevel(tt.title); got != tt.expected {
				t.Errorf("ClassifyLevel(%q) = %s, 期望 %s", tt.title, got, tt.expected)
			}
		})
	}
}

func TestClassifyPost(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected models.PostType
	}{
		{"招聘", "We're hiring! Join our team of engineers.", models.PostTypeHiring},
		{"开放职位", "Check out our open positions", models.PostTypeHiring},
		{"扩张", "Excited to announce our new office in Austin", models.PostTypeExpansion},
		{"opening归入扩张", "Grand opening in Berlin next week", models.PostTypeExpansion},
		{"里程碑", "We reached 1 million users!", models.PostTypeMilestone},
		{"招聘优先于扩张", "Growing fast and hiring engineers", models.PostTypeHiring},
		{"其他", "Happy holidays from all of us", models.PostTypeGeneral},
		{"空内容", "", models.PostTypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPost(tt.content); got != tt.expected {
				t.Errorf("ClassifyPost(%q) = %s, 期望 %s", tt.content, got, tt.expected)
			}
		})
	}
}

func TestExtractSkills(t *testing.T) {
	got := ExtractSkills("Senior Go / Python engineer with AWS, Node.js and C++; JavaScript a plus")
	want := map[string]bool{"Python": true, "JavaScript": true, "C++": true, "Go": true, "Node.js": true, "AWS": true}

	if len(got) != len(want) {
		t.Fatalf("ExtractSkills() = %v, 期望 %d 项", got, len(want))
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("意外的技能 %q", s)
		}
	}

	if got := ExtractSkills("Django developer"); len(got) != 1 || got[0] != "Django" {
		t.Errorf("不应从其他单词中误判技能: %v", got)
	}
	if got := ExtractSkills(""); got == nil || len(got) != 0 {
		t.Errorf("空文本应返回空切片, 实际 %v", got)
	}

	long := "Python Java JavaScript TypeScript Go Rust Swift Kotlin React Angular Vue Docker Kubernetes"
	if got := ExtractSkills(long); len(got) != models.MaxRequirements {
		t.Errorf("技能数应截断为%d, 实际 %d", models.MaxRequirements, len(got))
	}
}
