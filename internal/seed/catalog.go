package seed

// categoryTree lists the root categories and their children in insertion
// order.
var categoryTree = []struct {
	Name     string
	Children []string
}{
	{"Computing", []string{"Programming Languages", "Artificial Intelligence", "Databases", "Operating Systems"}},
	{"Literature", []string{"Contemporary Chinese", "World Classics", "Mystery", "Essays"}},
	{"History", []string{"Chinese History", "World History", "Biography", "Archaeology"}},
	{"Business", []string{"Economics", "Management", "Investing", "Marketing"}},
}

type bookSeed struct {
	Title     string
	Author    string
	Category  string
	Price     float64
	Publisher string
}

var books = []bookSeed{
	// Computing
	{"Python Crash Course", "Eric Matthes", "Programming Languages", 89.0, "Posts & Telecom Press"},
	{"Core Java", "Cay S. Horstmann", "Programming Languages", 119.0, "China Machine Press"},
	{"C++ Primer Plus", "Stephen Prata", "Programming Languages", 98.0, "Posts & Telecom Press"},
	{"The Go Programming Language", "Donovan", "Programming Languages", 79.0, "Publishing House of Electronics Industry"},
	{"Professional JavaScript for Web Developers", "Matt Frisbie", "Programming Languages", 99.0, "Posts & Telecom Press"},
	{"The Tao of Rust", "Zhang Handong", "Programming Languages", 85.0, "Publishing House of Electronics Industry"},
	{"Machine Learning", "Zhou Zhihua", "Artificial Intelligence", 88.0, "Tsinghua University Press"},
	{"Deep Learning", "Ian Goodfellow", "Artificial Intelligence", 168.0, "Posts & Telecom Press"},
	{"Dive into Deep Learning", "Li Mu", "Artificial Intelligence", 85.0, "Posts & Telecom Press"},
	{"Artificial Intelligence: A Modern Approach", "Russell", "Artificial Intelligence", 128.0, "Tsinghua University Press"},
	{"Database System Concepts", "Silberschatz", "Databases", 120.0, "China Machine Press"},
	{"High Performance MySQL", "Baron Schwartz", "Databases", 128.0, "Publishing House of Electronics Industry"},
	{"Redis Design and Implementation", "Huang Jianhong", "Databases", 69.0, "China Machine Press"},
	{"Computer Systems: A Programmer's Perspective", "Randal E. Bryant", "Operating Systems", 139.0, "China Machine Press"},
	{"Modern Operating Systems", "Tanenbaum", "Operating Systems", 99.0, "China Machine Press"},
	{"Computer Networking: A Top-Down Approach", "Kurose", "Operating Systems", 89.0, "China Machine Press"},

	// Literature
	{"To Live", "Yu Hua", "Contemporary Chinese", 45.0, "October Literature and Art"},
	{"Chronicle of a Blood Merchant", "Yu Hua", "Contemporary Chinese", 39.5, "October Literature and Art"},
	{"The Three-Body Trilogy", "Liu Cixin", "Contemporary Chinese", 93.0, "Chongqing Press"},
	{"Ordinary World", "Lu Yao", "Contemporary Chinese", 108.0, "October Literature and Art"},
	{"Fortress Besieged", "Qian Zhongshu", "Contemporary Chinese", 39.0, "People's Literature Publishing House"},
	{"One Hundred Years of Solitude", "Marquez", "World Classics", 55.0, "Thinkingdom"},
	{"The Moon and Sixpence", "Maugham", "World Classics", 42.0, "Zhejiang Literature and Art"},
	{"The Kite Runner", "Hosseini", "World Classics", 49.0, "Shanghai People's Publishing House"},
	{"The Stranger", "Camus", "World Classics", 45.0, "Shanghai Translation Publishing House"},
	{"Journey Under the Midnight Sun", "Keigo Higashino", "Mystery", 59.0, "Thinkingdom"},
	{"The Devotion of Suspect X", "Keigo Higashino", "Mystery", 48.0, "Thinkingdom"},
	{"The Complete Sherlock Holmes", "Arthur Conan Doyle", "Mystery", 128.0, "Qunzhong Press"},
	{"Murder on the Orient Express", "Agatha Christie", "Mystery", 39.0, "New Star Press"},
	{"A Bitter Cultural Journey", "Yu Qiuyu", "Essays", 48.0, "Changjiang Literature and Art"},
	{"Stories of the Sahara", "Sanmao", "Essays", 38.0, "October Literature and Art"},
	{"The Temple of Earth and Me", "Shi Tiesheng", "Essays", 32.0, "People's Literature Publishing House"},

	// History
	{"1587, A Year of No Significance", "Ray Huang", "Chinese History", 56.0, "Zhonghua Book Company"},
	{"Those Things of the Ming Dynasty", "Dangnian Mingyue", "Chinese History", 299.0, "Zhejiang People's Publishing House"},
	{"Political Gains and Losses in Chinese History", "Qian Mu", "Chinese History", 32.0, "SDX Joint Publishing"},
	{"From the Soil", "Fei Xiaotong", "Chinese History", 36.0, "People's Publishing House"},
	{"Sapiens", "Yuval Noah Harari", "World History", 68.0, "CITIC Press"},
	{"Guns, Germs, and Steel", "Jared Diamond", "World History", 65.0, "Shanghai Translation Publishing House"},
	{"A Global History", "Stavrianos", "World History", 138.0, "Peking University Press"},
	{"The Silk Roads", "Peter Frankopan", "World History", 108.0, "Zhejiang University Press"},
	{"The Gay Genius", "Lin Yutang", "Biography", 45.0, "Hunan Literature and Art"},
	{"A Biography of Zeng Guofan", "Zhang Hongjie", "Biography", 68.0, "Democracy and Construction Press"},
	{"Steve Jobs", "Walter Isaacson", "Biography", 88.0, "CITIC Press"},
	{"Deng Xiaoping and the Transformation of China", "Ezra Vogel", "Biography", 108.0, "SDX Joint Publishing"},
	{"The Archaeology of China", "Liu Li", "Archaeology", 88.0, "SDX Joint Publishing"},
	{"Mysteries of Sanxingdui", "Discovery Journeys", "Archaeology", 58.0, "Bashu Publishing House"},

	// Business
	{"The Wealth of Nations", "Adam Smith", "Economics", 68.0, "The Commercial Press"},
	{"Principles of Economics", "N. Gregory Mankiw", "Economics", 168.0, "Peking University Press"},
	{"Capital", "Karl Marx", "Economics", 198.0, "People's Publishing House"},
	{"Involved", "Lan Xiaohuan", "Economics", 65.0, "Shanghai People's Publishing House"},
	{"The Effective Executive", "Peter Drucker", "Management", 55.0, "China Machine Press"},
	{"Principles", "Ray Dalio", "Management", 98.0, "CITIC Press"},
	{"The Pyramid Principle", "Barbara Minto", "Management", 68.0, "Thinkingdom"},
	{"Nonviolent Communication", "Marshall Rosenberg", "Management", 49.0, "Huaxia Publishing House"},
	{"Rich Dad Poor Dad", "Robert Kiyosaki", "Investing", 49.0, "Sichuan People's Publishing House"},
	{"The Intelligent Investor", "Benjamin Graham", "Investing", 69.0, "Posts & Telecom Press"},
	{"The Almanack of Naval Ravikant", "Eric Jorgenson", "Investing", 58.0, "CITIC Press"},
	{"Marketing Management", "Philip Kotler", "Marketing", 168.0, "Truth & Wisdom Press"},
	{"Positioning", "Jack Trout", "Marketing", 58.0, "China Machine Press"},
	{"Influence", "Robert Cialdini", "Marketing", 69.0, "Beijing United Publishing"},
}
