package memes

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

type template struct {
	title    string
	content  string
	category string
}

func (t template) meme() model.Meme {
	return model.Meme{Title: t.title, Content: t.content, Category: t.category}
}

// customTemplates are keyed by risk tier; %[1]s is the job title and %[2]s the score.
var customTemplates = map[string][]template{
	jobs.TierHigh: {
		{title: "When you realize %[1]s is %[2]s%% automated:", content: "🤖 AI: 'I got this' 👨‍💼 You: 'But I went to college!' 🤖 AI: 'I learned this in 2 minutes'"},
		{title: "%[1]s job security in 2024:", content: "📉 Going down faster than my motivation to learn new skills"},
	},
	jobs.TierMedium: {
		{title: "%[1]s automation status:", content: "😅 AI can do parts of it, but not the important stuff... yet"},
		{title: "My %[1]s career path:", content: "👨‍💼 Human → 🤖 AI Assistant → 🤖 AI Supervisor → 🤖 AI"},
	},
	jobs.TierLow: {
		{title: "%[1]s automation risk:", content: "😎 AI-proof job! Time to become the one who builds the AI"},
		{title: "%[1]s job security:", content: "🛡️ You're safe! AI still can't handle the human touch"},
	},
}

var tierTemplates = map[string][]template{
	jobs.TierHigh: {
		{"When you realize your job is 90% automated:", "🤖 AI: 'I got this' 👨‍💼 You: 'But I have 10 years of experience!' 🤖 AI: 'I learned this in 10 seconds'", "High Risk Reality Check"},
		{"Job security in 2024:", "📉 Going down faster than my motivation to learn new skills", "Career Crisis"},
		{"My job description vs What AI actually does:", "📝 Me: 'Complex analysis and strategic thinking' 🤖 AI: *Does it in 0.3 seconds*", "Job Reality"},
	},
	jobs.TierMedium: {
		{"AI can do parts of my job, but not the important stuff:", "😅 You're safe... for now", "Medium Risk Humor"},
		{"When AI tries to replace you but fails:", "🤖 AI: 'I can handle this' 👨‍💼 You: 'Good luck with the client meetings'", "AI vs Human"},
		{"My career path:", "👨‍💼 Human → 🤖 AI Assistant → 🤖 AI Supervisor → 🤖 AI", "Career Evolution"},
	},
	jobs.TierLow: {
		{"AI-proof job status:", "😎 You're safe! AI still can't handle the human touch", "Low Risk Celebration"},
		{"When you're the one building the AI:", "💻 You: 'I'm creating the tools that will replace everyone else' 😈", "Tech Humor"},
		{"Job security level:", "🛡️ AI-proof! Time to become the robot whisperer", "Job Security"},
	},
}

var breakingTemplates = []template{
	{"Latest AI breakthrough:", "🤖 AI: 'I can now do your job' 👨‍💼 You: 'But I have a degree!' 🤖 AI: 'I have access to all degrees'", "AI Breakthrough"},
	{"When your company announces 'AI integration':", "😱 Translation: 'We're replacing humans with robots'", "Company News"},
	{"Job market in 2024:", "📈 AI jobs: Up 500% 📉 Human jobs: Down 50% 😅 Your job: Somewhere in between", "Market Trends"},
	{"When you see your job listed as 'AI-proof':", "😎 You: 'I'm safe!' 🤖 AI: 'Challenge accepted'", "Job Security"},
	{"The automation paradox:", "🤖 AI creates jobs → 🤖 AI takes jobs → 🤖 AI creates more jobs → 🤖 AI takes more jobs", "Automation Paradox"},
}

// DefaultPlatform is used for platforms without their own templates.
const DefaultPlatform = "twitter"

var platformTemplates = map[string][]template{
	"twitter": {
		{"🔥 HOT TAKE 🔥", "Your job is probably already automated and you don't even know it.", "Twitter Hot Take"},
		{"Thread: Why your job is cooked 🧵", "1/ AI can do it faster\n2/ AI can do it cheaper\n3/ AI doesn't need coffee breaks\n4/ AI doesn't call in sick\n5/ AI doesn't ask for raises", "Twitter Thread"},
	},
	"tiktok": {
		{"POV: You just found out your job is 90% automated", "😱 *Panic* → 😤 *Denial* → 😅 *Acceptance* → 🚀 *Time to learn coding*", "TikTok POV"},
		{"The automation dance 💃", "🤖 AI: *Does your job perfectly* 👨‍💼 You: *Still gets paid* 💃 *Dance break*", "TikTok Dance"},
	},
	"linkedin": {
		{"Professional insight on job automation trends", "The future of work is evolving rapidly. Those who adapt to AI collaboration will thrive. #FutureOfWork #AI #CareerDevelopment", "LinkedIn Professional"},
		{"Thought leadership moment", "Instead of fearing AI, let's focus on how we can leverage it to enhance our human capabilities. #AI #Innovation #Leadership", "LinkedIn Thought Leadership"},
	},
}

// Moods accepted by the generate endpoint. The mood does not change the
// template choice.
var Moods = []string{"happy", "sad", "angry", "neutral", "excited", "worried"}

// Platforms accepted by the generate endpoint.
var Platforms = []string{"twitter", "tiktok", "linkedin", "instagram", "facebook"}

func pick(ts []template) template {
	return ts[rand.IntN(len(ts))]
}

// viralScore returns a random score in [lo, lo+span).
func viralScore(lo, span int) int {
	return rand.IntN(span) + lo
}

// FormatScore renders a score without trailing zeros: 85 -> "85", 85.5 -> "85.5".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// Custom builds the meme returned by POST /api/memes/generate.
func Custom(jobTitle string, cookedScore float64, now time.Time) model.Meme {
	t := pick(customTemplates[jobs.RiskTier(cookedScore)])
	score := cookedScore
	return model.Meme{
		ID:          now.UnixMilli(),
		Title:       fmt.Sprintf(t.title, jobTitle, FormatScore(cookedScore)),
		Content:     t.content,
		Category:    "Custom Generated",
		ViralScore:  viralScore(80, 20),
		JobTitle:    jobTitle,
		CookedScore: &score,
		Timestamp:   now,
	}
}

// ForJob builds a meme for an analyzed job, substituting the title for
// "your job" in the tier template.
func ForJob(rec model.JobRecord, now time.Time) model.Meme {
	m := pick(tierTemplates[jobs.RiskTier(float64(rec.AutomationRisk))]).meme()
	m.Title = strings.Replace(m.Title, "your job", rec.Title, 1)
	risk := rec.AutomationRisk
	m.JobTitle = rec.Title
	m.AutomationRisk = &risk
	m.JobCategory = rec.Category
	m.ViralScore = viralScore(80, 20)
	m.Timestamp = now
	return m
}

// Breaking builds a trending "news" meme.
func Breaking(now time.Time) model.Meme {
	m := pick(breakingTemplates).meme()
	m.ID = now.UnixMilli()
	m.ViralScore = viralScore(85, 15)
	m.IsTrending = true
	m.Timestamp = now
	return m
}

// ForPlatform builds a meme styled for platform. Unknown platforms get the
// twitter templates but keep their own name. rec is optional.
func ForPlatform(platform string, rec *model.JobRecord, now time.Time) model.Meme {
	name := strings.ToLower(platform)
	ts, ok := platformTemplates[name]
	if !ok {
		ts = platformTemplates[DefaultPlatform]
	}
	m := pick(ts).meme()
	m.Platform = name
	m.ViralScore = viralScore(80, 20)
	m.Timestamp = now
	if rec != nil {
		risk := rec.AutomationRisk
		m.JobTitle = rec.Title
		m.AutomationRisk = &risk
	}
	return m
}

// FavoriteJob is a job the user has starred.
type FavoriteJob struct {
	Title          string `json:"title"`
	AutomationRisk int    `json:"automationRisk"`
}

// SearchEntry is one past search.
type SearchEntry struct {
	JobTitle    string  `json:"jobTitle"`
	CookedScore float64 `json:"cookedScore"`
}

// Profile is what the client knows about the user.
type Profile struct {
	FavoriteJobs   []FavoriteJob `json:"favoriteJobs"`
	SearchHistory  []SearchEntry `json:"searchHistory"`
	RiskPreference string        `json:"riskPreference"`
}

// Personalized builds a meme from the user's favorites, or failing that their
// latest search.
func Personalized(p Profile, now time.Time) model.Meme {
	var content string
	switch {
	case len(p.FavoriteJobs) > 0:
		fav := p.FavoriteJobs[rand.IntN(len(p.FavoriteJobs))]
		verdict := "You might be safe... for now."
		if fav.AutomationRisk >= 70 {
			verdict = "Time to pivot!"
		}
		content = fmt.Sprintf("Your favorite job (%s) is %d%% automated. %s", fav.Title, fav.AutomationRisk, verdict)
	case len(p.SearchHistory) > 0:
		last := p.SearchHistory[len(p.SearchHistory)-1]
		verdict := "That job might survive the AI apocalypse."
		if last.CookedScore >= 70 {
			verdict = "That job is cooked! 🔥"
		}
		content = fmt.Sprintf("You recently searched for '%s'. %s", last.JobTitle, verdict)
	default:
		content = "Based on your search patterns, you're clearly worried about AI taking your job. Smart thinking! 🤖"
	}

	return model.Meme{
		Title:          "Your personalized job automation status:",
		Content:        content,
		Category:       "Personalized",
		ViralScore:     viralScore(80, 20),
		IsPersonalized: true,
		Timestamp:      now,
	}
}
