package game

// 角色和判决卡都是不可变的目录数据（波斯语显示文案）
// 每局游戏由上帝在开局前从目录中选出一个子集

var RoleCatalog = []Role{
	// 城市阵营
	{
		ID:   "doctor",
		Name: "دکتر",
		Description: []string{
			"هر شب می‌تواند یک نفر را نجات دهد",
			"نمی‌تواند خودش را نجات دهد",
			"اگر کسی که نجات داده شلیک شده باشد، زنده می‌ماند",
		},
		Team:      TEAM_CITY,
		Abilities: []string{"heal"},
	},
	{
		ID:   "detective",
		Name: "کارآگاه",
		Description: []string{
			"هر شب می‌تواند هویت یک نفر را بپرسد",
			"گاد به او می‌گوید آن شخص مافیا است یا نه",
			"اطلاعات مهمی برای شهر جمع‌آوری می‌کند",
		},
		Team:      TEAM_CITY,
		Abilities: []string{"investigate"},
	},
	{
		ID:   "sniper",
		Name: "تک‌تیرانداز",
		Description: []string{
			"یک بار در کل بازی می‌تواند شلیک کند",
			"اگر مافیا بزند، مافیا می‌میرد",
			"اگر شهروند بزند، خودش می‌میرد",
		},
		Team:      TEAM_CITY,
		Abilities: []string{"shoot_once"},
	},
	{
		ID:   "bodyguard",
		Name: "محافظ",
		Description: []string{
			"هر شب می‌تواند یک نفر را محافظت کند",
			"اگر آن شخص شلیک شود، محافظ به جایش می‌میرد",
			"نمی‌تواند خودش را محافظت کند",
		},
		Team:      TEAM_CITY,
		Abilities: []string{"protect"},
	},

	// 黑手党阵营
	{
		ID:   "godfather",
		Name: "پدرخوانده",
		Description: []string{
			"رهبر مافیا و تصمیم‌گیرنده نهایی",
			"برای کارآگاه به عنوان شهروند شناخته می‌شود",
			"اگر بمیرد، مافیا ضعیف می‌شود",
		},
		Team:      TEAM_MAFIA,
		Abilities: []string{"lead_mafia", "appear_innocent"},
	},
	{
		ID:   "mafia_simple",
		Name: "مافیای ساده",
		Description: []string{
			"عضو معمولی مافیا",
			"در شب با سایر مافیاها مشورت می‌کند",
			"هدف: از مافیا دفاع کند و شهروندان را حذف کند",
		},
		Team:      TEAM_MAFIA,
		Abilities: []string{"vote_kill"},
	},
	{
		ID:   "mafia_doctor",
		Name: "دکتر مافیا",
		Description: []string{
			"می‌تواند اعضای مافیا را نجات دهد",
			"فقط یک بار در کل بازی می‌تواند استفاده کند",
			"نمی‌تواند خودش را نجات دهد",
		},
		Team:      TEAM_MAFIA,
		Abilities: []string{"heal_mafia_once"},
	},
	{
		ID:   "spy",
		Name: "جاسوس",
		Description: []string{
			"عضو مافیا که به عنوان شهروند ظاهر می‌شود",
			"اطلاعات شهروندان را به مافیا می‌رساند",
			"برای کارآگاه شهروند شناخته می‌شود",
		},
		Team:      TEAM_MAFIA,
		Abilities: []string{"appear_innocent", "gather_info"},
	},

	// 独立阵营
	{
		ID:   "serial_killer",
		Name: "قاتل زنجیره‌ای",
		Description: []string{
			"هر شب یک نفر را می‌کشد",
			"برای پیروزی باید تنها بازمانده باشد",
			"نه با مافیا همکاری می‌کند نه با شهر",
		},
		Team:      TEAM_INDEPENDENT,
		Abilities: []string{"kill_nightly"},
	},
	{
		ID:   "joker",
		Name: "جوکر",
		Description: []string{
			"برای پیروزی باید در رای‌گیری روز اعدام شود",
			"اگر در شب کشته شود، بازی را می‌بازد",
			"هدف: مشکوک رفتار کند تا اعدامش کنند",
		},
		Team:      TEAM_INDEPENDENT,
		Abilities: []string{"win_if_lynched"},
	},
	{
		ID:   "cupid",
		Name: "کوپید",
		Description: []string{
			"در شب اول دو نفر را عاشق هم می‌کند",
			"اگر یکی از عاشقان بمیرد، دیگری هم می‌میرد",
			"اگر عاشقان از تیم‌های مختلف باشند، کوپید برنده می‌شود",
		},
		Team:      TEAM_INDEPENDENT,
		Abilities: []string{"create_lovers"},
	},
	{
		ID:   "witch",
		Name: "جادوگر",
		Description: []string{
			"یک بار می‌تواند کسی را نجات دهد",
			"یک بار می‌تواند کسی را بکشد",
			"قدرت‌هایش را در شب‌های مختلف استفاده می‌کند",
		},
		Team:      TEAM_INDEPENDENT,
		Abilities: []string{"heal_once", "kill_once"},
	},
}

var FinalCardCatalog = []FinalCard{
	{
		ID:   "identity_reveal",
		Name: "افشای هویت",
		Description: []string{
			"هویت واقعی شما برای همه آشکار می‌شود",
			"تمام بازیکنان نقش شما را می‌دانند",
			"ممکن است استراتژی بازی را تغییر دهد",
		},
		AudioPath: "audio/identity_reveal.mp3",
	},
	{
		ID:   "last_words",
		Name: "آخرین کلمات",
		Description: []string{
			"قبل از مرگ می‌توانید ۳۰ ثانیه صحبت کنید",
			"می‌توانید اطلاعات مهم را فاش کنید",
			"آخرین فرصت برای تأثیرگذاری روی بازی",
		},
		AudioPath: "audio/last_words.mp3",
	},
	{
		ID:   "revenge",
		Name: "انتقام",
		Description: []string{
			"می‌توانید یک نفر را با خود به کشتن دهید",
			"آن شخص باید از کسانی باشد که به شما رای داده",
			"انتقام شیرینی از دشمنان خود بگیرید",
		},
		AudioPath: "audio/revenge.mp3",
	},
	{
		ID:   "silence",
		Name: "سکوت",
		Description: []string{
			"تا پایان بازی نمی‌توانید صحبت کنید",
			"فقط با اشاره و حرکت می‌توانید ارتباط برقرار کنید",
			"چالش بزرگی برای ادامه بازی",
		},
		AudioPath: "audio/silence.mp3",
	},
	{
		ID:   "double_vote",
		Name: "رای مضاعف",
		Description: []string{
			"در رای‌گیری بعدی دو رای دارید",
			"می‌توانید نتیجه رای‌گیری را تغییر دهید",
			"قدرت تأثیرگذاری بالا روی بازی",
		},
		AudioPath: "audio/double_vote.mp3",
	},
	{
		ID:   "immunity",
		Name: "مصونیت",
		Description: []string{
			"یک شب از حملات در امان هستید",
			"نمی‌توانید کشته شوید",
			"فرصت طلایی برای زنده ماندن",
		},
		AudioPath: "audio/immunity.mp3",
	},
	{
		ID:   "role_swap",
		Name: "تعویض نقش",
		Description: []string{
			"نقش خود را با یک بازیکن دیگر عوض کنید",
			"هر دو نقش‌های جدید را می‌گیرید",
			"تغییر کامل در استراتژی بازی",
		},
		AudioPath: "audio/role_swap.mp3",
	},
	{
		ID:   "investigation",
		Name: "تحقیق",
		Description: []string{
			"می‌توانید نقش یک بازیکن را بدانید",
			"اطلاعات مهمی کسب می‌کنید",
			"به شما در تصمیم‌گیری کمک می‌کند",
		},
		AudioPath: "audio/investigation.mp3",
	},
	{
		ID:   "protection",
		Name: "محافظت",
		Description: []string{
			"می‌توانید یک بازیکن را محافظت کنید",
			"آن شخص یک شب در امان است",
			"نشان دهید که متحد او هستید",
		},
		AudioPath: "audio/protection.mp3",
	},
	{
		ID:   "chaos",
		Name: "هرج و مرج",
		Description: []string{
			"تمام بازیکنان نقش‌هایشان را عوض می‌کنند",
			"بازی کاملاً تغییر می‌کند",
			"هیچ‌کس نمی‌داند چه اتفاقی می‌افتد",
		},
		AudioPath: "audio/chaos.mp3",
	},
}

// DefaultSettings 返回默认游戏设置的副本
// 默认选入整个目录，上帝在创建会话时可以缩小选择范围
func DefaultSettings() GameSettings {
	roles := make([]string, 0, len(RoleCatalog))
	for _, r := range RoleCatalog {
		roles = append(roles, r.ID)
	}

	cards := make([]string, 0, len(FinalCardCatalog))
	for _, c := range FinalCardCatalog {
		cards = append(cards, c.ID)
	}

	return GameSettings{
		MinPlayers:          3,
		MaxPlayers:          12,
		SpeakingTimeIntro:   40,
		SpeakingTimeRegular: 120,
		ChallengeTime:       60,
		DefenseTime:         120,
		SafeMode:            true,
		SelectedRoles:       roles,
		SelectedFinalCards:  cards,
	}
}

// FindRole 按 ID 在目录中查找角色定义
func FindRole(id string) *Role {
	for i := range RoleCatalog {
		if RoleCatalog[i].ID == id {
			return &RoleCatalog[i]
		}
	}

	return nil
}

// FindFinalCard 按 ID 在目录中查找判决卡定义
func FindFinalCard(id string) *FinalCard {
	for i := range FinalCardCatalog {
		if FinalCardCatalog[i].ID == id {
			return &FinalCardCatalog[i]
		}
	}

	return nil
}
