package pseudocode

import "github.com/matzehuels/stepwise/pkg/step"

var listings = map[string]Listing{
	"bfs": {
		Algorithm: "bfs",
		Title:     "Breadth-First Search",
		Lines: []string{
			"function BFS(start):",
			"    create a queue Q",
			"    mark start as visited",
			"    Q.enqueue(start)",
			"    while Q is not empty:",
			"        node = Q.dequeue()",
			"        for each neighbor of node:",
			"            if neighbor not visited:",
			"                mark as visited",
			"                Q.enqueue(neighbor)",
		},
		Kinds: map[step.Kind]int{
			"create-queue":  1,
			"mark-start":    2,
			"enqueue-start": 3,
			"loop":          4,
			"dequeue":       5,
			"neighbors":     6,
			"check":         7,
			"visit":         8,
			"enqueue":       9,
		},
	},
	"dfs": {
		Algorithm: "dfs",
		Title:     "Depth-First Search",
		Lines: []string{
			"function DFS(node):",
			"    mark node as visited",
			"    for each neighbor of node:",
			"        if neighbor not visited:",
			"            DFS(neighbor)",
		},
		Kinds: map[step.Kind]int{
			"call":      0,
			"mark":      1,
			"neighbors": 2,
			"check":     3,
			"traverse":  4,
		},
	},
	"heapify": {
		Algorithm: "heapify",
		Title:     "Build Max-Heap",
		Lines: []string{
			"BuildHeap(H[1..n]):",
			"for i ← ⌊n/2⌋ downto 1 do",
			"    Heapify(H, i, n)",
			"Heapify(H, k, n):",
			"while 2k ≤ n do",
			"    j ← larger child of k",
			"    if H[k] ≥ H[j] then stop",
			"    swap H[k] and H[j]; k ← j",
		},
		Kinds: map[step.Kind]int{
			"build":   2,
			"sift":    3,
			"compare": 5,
			"check":   6,
			"swap":    7,
		},
	},
	"heapsort": {
		Algorithm: "heapsort",
		Title:     "Heap Sort",
		Lines: []string{
			"HeapSort(H[1..n]):",
			"for i ← ⌊n/2⌋ downto 1 do",
			"    Heapify(H, i, n)",
			"for i ← n downto 2 do",
			"    swap H[1] and H[i]",
			"    heapSize ← i − 1",
			"    Heapify(H, 1, heapSize)",
			"Heapify(H, k, n):",
			"while 2k ≤ n do",
			"    j ← larger child of k",
			"    if H[k] ≥ H[j] then stop",
			"    swap H[k] and H[j]; k ← j",
		},
		Kinds: map[step.Kind]int{
			"build":   2,
			"extract": 4,
			"shrink":  5,
			"resift":  6,
			"sift":    7,
			"compare": 9,
			"check":   10,
			"swap":    11,
		},
	},
	"horspool": {
		Algorithm: "horspool",
		Title:     "Horspool String Matching",
		Lines: []string{
			"build shift table from pattern",
			"shift ← 0",
			"while shift ≤ |text| − |pattern| do",
			"    j ← |pattern| − 1",
			"    while j ≥ 0 and pattern[j] = text[shift + j] do",
			"        j ← j − 1",
			"    if j < 0 then",
			"        report match at shift",
			"        shift ← shift + 1",
			"    else",
			"        shift ← shift + table[text[shift + |pattern| − 1]]",
			"end while",
		},
		Kinds: map[step.Kind]int{
			"build-table": 0,
			"init":        1,
			"window":      2,
			"align":       3,
			"compare":     4,
			"advance":     5,
			"match":       7,
			"shift-one":   8,
			"mismatch":    9,
			"shift":       10,
			"done":        11,
		},
	},
	"prim": {
		Algorithm: "prim",
		Title:     "Prim's Minimum Spanning Tree",
		Lines: []string{
			"function Prim(start):",
			"    initialize visited = {start}, MST = []",
			"    add all edges from start to the pool",
			"    while pool has an eligible edge:",
			"        pick edge with min weight",
			"        if far end not visited:",
			"            mark far end visited",
			"            add edge to MST",
			"            add new edges from far end to pool",
			"    return MST",
		},
		Kinds: map[step.Kind]int{
			"init":  1,
			"seed":  2,
			"loop":  3,
			"pick":  4,
			"stale": 5,
			"visit": 6,
			"add":   7,
			"push":  8,
			"done":  9,
		},
	},
	"fibonacci": {
		Algorithm: "fibonacci",
		Title:     "Fibonacci",
		Lines: []string{
			"function fib(n):",
			"    if n <= 1:",
			"        return n",
			"    left = fib(n - 1)",
			"    right = fib(n - 2)",
			"    return left + right",
		},
		Kinds: map[step.Kind]int{
			"call":          0,
			"base-check":    1,
			"base":          2,
			"recurse-left":  3,
			"recurse-right": 4,
			"combine":       5,
		},
	},
	"factorial": {
		Algorithm: "factorial",
		Title:     "Factorial",
		Lines: []string{
			"function fact(n):",
			"    if n <= 1:",
			"        return 1",
			"    return n * fact(n - 1)",
		},
		Kinds: map[step.Kind]int{
			"call":         0,
			"base-check":   1,
			"base":         2,
			"recurse-left": 3,
			"combine":      3,
		},
	},
	"gcd": {
		Algorithm: "gcd",
		Title:     "Greatest Common Divisor",
		Lines: []string{
			"function gcd(a, b):",
			"    if b == 0:",
			"        return a",
			"    return gcd(b, a % b)",
		},
		Kinds: map[step.Kind]int{
			"call":         0,
			"base-check":   1,
			"base":         2,
			"recurse-left": 3,
			"combine":      3,
		},
	},
	"toh": {
		Algorithm: "toh",
		Title:     "Towers of Hanoi",
		Lines: []string{
			"function toh(n, from, to, aux):",
			"    if n == 1:",
			"        move disk from 'from' to 'to'",
			"        return",
			"    toh(n-1, from, aux, to)",
			"    move disk from 'from' to 'to'",
			"    toh(n-1, aux, to, from)",
		},
		Kinds: map[step.Kind]int{
			"call":          0,
			"base-check":    1,
			"base":          2,
			"return":        3,
			"recurse-left":  4,
			"move":          5,
			"recurse-right": 6,
		},
	},
}
