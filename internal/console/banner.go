package console

// ANSI控制序列
const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// titleBanner 登录横幅
const titleBanner = ansiRed + ansiBold + `
  _                          _          __   _   _            
 | |    ___  __ _  ___ _ __ | |_ ___   / _| | |_| |__   ___   
 | |   / _ \/ _` + "`" + ` |/ _ \ '_ \| __/ __| | |_  | __| '_ \ / _ \  
 | |__|  __/ (_| |  __/ | | | |_\__ \ |  _| | |_| | | |  __/  
 |_____\___|\__, |\___|_| |_|\__|___/ |_|    \__|_| |_|\___|  
            |___/                                             
  ____          _   ____                              
 |  _ \ ___  __| | |  _ \ _ __ __ _  __ _  ___  _ __  
 | |_) / _ \/ _` + "`" + ` | | | | | '__/ _` + "`" + ` |/ _` + "`" + ` |/ _ \| '_ \ 
 |  _ <  __/ (_| | | |_| | | | (_| | (_| | (_) | | | |
 |_| \_\___|\__,_| |____/|_|  \__,_|\__, |\___/|_| |_|
                                    |___/             
` + ansiReset

// forestBanner 森林场景横幅
const forestBanner = ansiGreen + `
      /\      The forest is dark and full of danger...
     /  \
    / /\ \
   /_/  \_\
     ||||
` + ansiReset
