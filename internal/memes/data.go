package memes

import "github.com/DorinSirca/ismyjobcooked-api/internal/model"

// library is the static meme rotation. IDs are 1-based and contiguous.
var library = []model.Meme{
	{ID: 1, Title: "When you realize ChatGPT can do your job better than you...", Content: "🔥 Plot twist: It already is. 🔥", Category: "AI Reality Check", ViralScore: 95},
	{ID: 2, Title: "Me explaining to my boss why AI won't replace me", Content: "Meanwhile, AI is already doing my job...", Category: "Workplace Humor", ViralScore: 88},
	{ID: 3, Title: "Job security in 2024:", Content: "🤖 AI: 'I can do that' 👨‍💼 You: 'But I have experience!' 🤖 AI: 'I can learn in 2 seconds'", Category: "AI vs Human", ViralScore: 92},
	{ID: 4, Title: "My job description vs What AI actually does:", Content: "📝 Me: 'Complex analysis and strategic thinking' 🤖 AI: *Does it in 0.3 seconds*", Category: "Job Reality", ViralScore: 87},
	{ID: 5, Title: "When you finally learn to code to future-proof your career", Content: "💻 You: 'Now I'm safe!' 🤖 GitHub Copilot: 'Allow me to introduce myself...'", Category: "Tech Humor", ViralScore: 90},
	{ID: 6, Title: "The three stages of job automation grief:", Content: "😤 Denial → 😰 Panic → 😅 Acceptance → 🤖 Learning to code", Category: "Career Stages", ViralScore: 85},
	{ID: 7, Title: "AI replacing jobs be like:", Content: "👨‍💼 'I have 10 years of experience!' 🤖 'I have 10 seconds of training data!'", Category: "Experience vs AI", ViralScore: 93},
	{ID: 8, Title: "My LinkedIn after AI takes my job:", Content: "🔗 'Open to work' → 'Open to learning AI' → 'Open to becoming AI'", Category: "Career Pivot", ViralScore: 89},
	{ID: 9, Title: "When you check ismyjobcooked.com and see 95% automation risk:", Content: "😱 *Panic* → 😤 *Denial* → 😅 *Acceptance* → 🚀 *Time to pivot*", Category: "Reality Check", ViralScore: 91},
	{ID: 10, Title: "The future of work:", Content: "🤖 AI does the work 👨‍💼 Human supervises AI 🤖 AI supervises human 👨‍💼 Human becomes AI", Category: "Future Work", ViralScore: 86},
	{ID: 11, Title: "Job interview in 2025:", Content: "👔 'What's your experience with AI?' 👨‍💼 'I survived the automation wave of 2024'", Category: "Future Interviews", ViralScore: 88},
	{ID: 12, Title: "When AI writes better code than you:", Content: "💻 You: *Spends 4 hours debugging* 🤖 AI: *Writes perfect code in 30 seconds*", Category: "Developer Humor", ViralScore: 94},
	{ID: 13, Title: "The automation timeline:", Content: "2024: AI helps with tasks → 2025: AI does most tasks → 2026: AI does all tasks → 2027: AI creates new tasks for humans", Category: "Timeline", ViralScore: 87},
	{ID: 14, Title: "My resume after AI takes over:", Content: "📄 'Proficient in Microsoft Office' → 'Proficient in ChatGPT' → 'Proficient in not being replaced by AI'", Category: "Resume Evolution", ViralScore: 90},
	{ID: 15, Title: "When you realize your job is 'cooked':", Content: "🔥 'Well-done' → 'Burnt' → 'Ashes' → 'Time to become a prompt engineer'", Category: "Career Crisis", ViralScore: 92},
}
